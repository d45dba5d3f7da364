package services

import (
	"context"
	"errors"
	"fmt"

	"netbill/internal/domain/radius"
	"netbill/internal/domain/subscriber"
	"netbill/internal/shared/logger"
)

// EntitlementSync reconciles a subscriber's RADIUS authorization records
// with its billing state. Every sub-step is best-effort: a failure is
// logged and the remaining steps still run, so a partially unreachable
// authorization store degrades rather than blocks reactivation.
type EntitlementSync struct {
	store  radius.Store
	logger logger.Interface
}

func NewEntitlementSync(store radius.Store, logger logger.Interface) *EntitlementSync {
	return &EntitlementSync{
		store:  store,
		logger: logger,
	}
}

// RestoreActiveEntitlement brings the authorization store in line with an
// active subscriber: current secret, the profile's group as the only
// membership, no suspension message, and a pinned static IP only when one
// is configured. Returns the joined errors of any failed sub-steps; the
// caller treats a non-nil result as transient, not fatal.
func (s *EntitlementSync) RestoreActiveEntitlement(ctx context.Context, sub *subscriber.Subscriber, profile *subscriber.Profile) error {
	username := sub.Username()
	var errs []error

	if err := s.store.UpsertCheckAttribute(ctx, username, radius.AttrCleartextPassword, sub.Secret()); err != nil {
		s.logger.Errorw("failed to sync subscriber secret to authorization store",
			"username", username, "error", err)
		errs = append(errs, fmt.Errorf("secret upsert: %w", err))
	}

	// Wholesale replacement keeps the one-group-per-subscriber invariant
	// even if stale memberships accumulated.
	if err := s.store.ReplaceUserGroup(ctx, username, profile.RadiusGroup(), radius.ActiveGroupPriority); err != nil {
		s.logger.Errorw("failed to replace authorization group",
			"username", username, "group", profile.RadiusGroup(), "error", err)
		errs = append(errs, fmt.Errorf("group replace: %w", err))
	}

	if err := s.store.RemoveReplyAttribute(ctx, username, radius.AttrReplyMessage); err != nil {
		s.logger.Errorw("failed to remove suspension message",
			"username", username, "error", err)
		errs = append(errs, fmt.Errorf("suspension message removal: %w", err))
	}

	if ip := sub.StaticIP(); ip != nil && *ip != "" {
		if err := s.store.UpsertReplyAttribute(ctx, username, radius.AttrFramedIPAddress, *ip); err != nil {
			s.logger.Errorw("failed to pin static IP",
				"username", username, "static_ip", *ip, "error", err)
			errs = append(errs, fmt.Errorf("static IP upsert: %w", err))
		}
	} else {
		// No configured IP means no pinned IP may survive a plan change.
		if err := s.store.RemoveReplyAttribute(ctx, username, radius.AttrFramedIPAddress); err != nil {
			s.logger.Errorw("failed to remove stale pinned IP",
				"username", username, "error", err)
			errs = append(errs, fmt.Errorf("static IP removal: %w", err))
		}
	}

	return errors.Join(errs...)
}
