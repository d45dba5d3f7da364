// Package radius implements the authorization store port against the
// standard FreeRADIUS SQL schema (radcheck, radusergroup, radreply).
package radius

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"netbill/internal/domain/radius"
	"netbill/internal/infrastructure/persistence/models"
	"netbill/internal/shared/db"
	"netbill/internal/shared/logger"
)

type SQLStore struct {
	db     *gorm.DB
	tm     *db.TransactionManager
	logger logger.Interface
}

func NewSQLStore(conn *gorm.DB, logger logger.Interface) radius.Store {
	return &SQLStore{
		db:     conn,
		tm:     db.NewTransactionManager(conn),
		logger: logger,
	}
}

func (s *SQLStore) UpsertCheckAttribute(ctx context.Context, username, attribute, value string) error {
	result := db.GetTxFromContext(ctx, s.db).Model(&models.RadCheckModel{}).
		Where("username = ? AND attribute = ?", username, attribute).
		Updates(map[string]interface{}{
			"op":    radius.OpAssign,
			"value": value,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update check attribute %s: %w", attribute, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	model := &models.RadCheckModel{
		Username:  username,
		Attribute: attribute,
		Op:        radius.OpAssign,
		Value:     value,
	}
	if err := db.GetTxFromContext(ctx, s.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to insert check attribute %s: %w", attribute, err)
	}

	s.logger.Debugw("check attribute inserted", "username", username, "attribute", attribute)
	return nil
}

// ReplaceUserGroup wipes every membership row for the username before
// inserting the new one, inside a transaction, so a crash can never leave a
// subscriber in two groups.
func (s *SQLStore) ReplaceUserGroup(ctx context.Context, username, groupName string, priority int) error {
	err := s.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx := db.GetTxFromContext(txCtx, s.db)

		if err := tx.Where("username = ?", username).Delete(&models.RadUserGroupModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete group memberships: %w", err)
		}

		model := &models.RadUserGroupModel{
			Username:  username,
			GroupName: groupName,
			Priority:  priority,
		}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to insert group membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace user group for %s: %w", username, err)
	}

	s.logger.Debugw("user group replaced", "username", username, "group", groupName)
	return nil
}

func (s *SQLStore) UpsertReplyAttribute(ctx context.Context, username, attribute, value string) error {
	result := db.GetTxFromContext(ctx, s.db).Model(&models.RadReplyModel{}).
		Where("username = ? AND attribute = ?", username, attribute).
		Updates(map[string]interface{}{
			"op":    radius.OpAssign,
			"value": value,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update reply attribute %s: %w", attribute, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	model := &models.RadReplyModel{
		Username:  username,
		Attribute: attribute,
		Op:        radius.OpAssign,
		Value:     value,
	}
	if err := db.GetTxFromContext(ctx, s.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to insert reply attribute %s: %w", attribute, err)
	}

	s.logger.Debugw("reply attribute inserted", "username", username, "attribute", attribute)
	return nil
}

func (s *SQLStore) RemoveReplyAttribute(ctx context.Context, username, attribute string) error {
	err := db.GetTxFromContext(ctx, s.db).
		Where("username = ? AND attribute = ?", username, attribute).
		Delete(&models.RadReplyModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove reply attribute %s: %w", attribute, err)
	}

	return nil
}
