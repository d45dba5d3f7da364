package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	billingUsecases "netbill/internal/application/billing/usecases"
	"netbill/internal/shared/logger"
	"netbill/internal/shared/utils"
)

type InvoiceHandler struct {
	markPaidUC *billingUsecases.MarkInvoicePaidUseCase
	logger     logger.Interface
}

func NewInvoiceHandler(markPaidUC *billingUsecases.MarkInvoicePaidUseCase, logger logger.Interface) *InvoiceHandler {
	return &InvoiceHandler{
		markPaidUC: markPaidUC,
		logger:     logger,
	}
}

type MarkPaidRequest struct {
	PaidAt *time.Time `json:"paid_at"`
}

type outcomeDTO struct {
	Ran   bool   `json:"ran"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type MarkPaidResponse struct {
	InvoiceNumber string     `json:"invoice_number"`
	AlreadyPaid   bool       `json:"already_paid"`
	PaidAt        time.Time  `json:"paid_at"`
	NewExpiry     *time.Time `json:"new_expiry,omitempty"`

	Expiry       outcomeDTO `json:"expiry"`
	Ledger       outcomeDTO `json:"ledger"`
	Notification outcomeDTO `json:"notification"`
	Entitlement  outcomeDTO `json:"entitlement"`
	SessionReset outcomeDTO `json:"session_reset"`
}

// MarkPaid settles an invoice and reports the reconciliation outcome of
// every downstream system.
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid invoice ID")
		return
	}

	var req MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Errorw("failed to bind mark-paid request", "error", err)
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
			return
		}
		if err := utils.ValidateStruct(&req); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	report, err := h.markPaidUC.Execute(c.Request.Context(), billingUsecases.MarkInvoicePaidCommand{
		InvoiceID: uint(id),
		PaidAt:    req.PaidAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, toMarkPaidResponse(report))
}

func toMarkPaidResponse(report *billingUsecases.ReconciliationReport) MarkPaidResponse {
	return MarkPaidResponse{
		InvoiceNumber: report.InvoiceNumber,
		AlreadyPaid:   report.AlreadyPaid,
		PaidAt:        report.PaidAt,
		NewExpiry:     report.NewExpiry,
		Expiry:        toOutcomeDTO(report.Expiry),
		Ledger:        toOutcomeDTO(report.Ledger),
		Notification:  toOutcomeDTO(report.Notification),
		Entitlement:   toOutcomeDTO(report.Entitlement),
		SessionReset:  toOutcomeDTO(report.SessionReset),
	}
}

func toOutcomeDTO(o billingUsecases.Outcome) outcomeDTO {
	return outcomeDTO{Ran: o.Ran, OK: o.OK, Error: o.Error}
}
