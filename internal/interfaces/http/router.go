// Package http wires the application together and exposes it over gin.
package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	billingUsecases "netbill/internal/application/billing/usecases"
	ledgerUsecases "netbill/internal/application/ledger/usecases"
	notifServices "netbill/internal/application/notification/services"
	subscriberServices "netbill/internal/application/subscriber/services"
	"netbill/internal/infrastructure/cache"
	"netbill/internal/infrastructure/config"
	"netbill/internal/infrastructure/email"
	"netbill/internal/infrastructure/notify"
	infraRadius "netbill/internal/infrastructure/radius"
	"netbill/internal/infrastructure/repository"
	"netbill/internal/infrastructure/router"
	"netbill/internal/interfaces/http/handlers"
	"netbill/internal/shared/logger"
)

type Router struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	logger logger.Interface

	invoiceHandler *handlers.InvoiceHandler
}

func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	r := &Router{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		logger: log,
	}
	r.wire()
	return r
}

// wire builds the dependency graph bottom-up: repositories, then domain
// services, then the reconciliation use case and its handler.
func (r *Router) wire() {
	invoiceRepo := repository.NewInvoiceRepository(r.db, r.logger)
	subscriberRepo := repository.NewSubscriberRepository(r.db, r.logger)
	profileRepo := repository.NewProfileRepository(r.db, r.logger)
	ledgerRepo := repository.NewLedgerRepository(r.db, r.logger)
	providerRepo := repository.NewProviderRepository(r.db, r.logger)
	attemptLogRepo := repository.NewNotificationLogRepository(r.db, r.logger)
	templateRepo := repository.NewTemplateRepository(r.db, r.logger)

	radiusStore := infraRadius.NewSQLStore(r.db, r.logger)
	entitlementSync := subscriberServices.NewEntitlementSync(radiusStore, r.logger)
	sessions := router.NewCoAClient(&r.cfg.Router, r.logger)

	providerTimeout := time.Duration(r.cfg.Notify.ProviderTimeoutSeconds) * time.Second
	adapters := notify.NewAdapterFactory(providerTimeout, r.logger)
	dispatcher := notifServices.NewDispatcher(
		providerRepo, attemptLogRepo, adapters,
		r.cfg.Notify.CountryCode, providerTimeout, r.logger,
	)
	paymentNotifier := notifServices.NewPaymentNotifier(
		templateRepo, dispatcher,
		r.cfg.Company.Name, r.cfg.Company.Phone, r.logger,
	)

	ledgerUC := ledgerUsecases.NewRecordPaymentIncomeUseCase(ledgerRepo, r.logger)

	var admin billingUsecases.AdminNotifier
	if r.cfg.Email.AdminAddress != "" {
		admin = email.NewAdminAlertSender(&r.cfg.Email, r.logger)
	}

	var guard billingUsecases.ReconciliationGuard
	if r.cfg.Redis.Host != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", r.cfg.Redis.Host, r.cfg.Redis.Port),
			Password: r.cfg.Redis.Password,
			DB:       r.cfg.Redis.DB,
		})
		guard = cache.NewReconciliationGuard(client, 60*time.Second, r.logger)
	}

	markPaidUC := billingUsecases.NewMarkInvoicePaidUseCase(
		invoiceRepo, subscriberRepo, profileRepo,
		entitlementSync, sessions, ledgerUC,
		paymentNotifier, admin, guard, r.logger,
	)

	r.invoiceHandler = handlers.NewInvoiceHandler(markPaidUC, r.logger)
}

func (r *Router) SetupRoutes() {
	r.engine.Use(gin.Recovery())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")
	{
		api.POST("/invoices/:id/mark-paid", r.invoiceHandler.MarkPaid)
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
