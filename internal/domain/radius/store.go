// Package radius defines the port to the external RADIUS authorization
// store: the system of record a network access server consults to
// authorize and rate-limit a subscriber's connection.
package radius

import "context"

// Standard FreeRADIUS attribute names touched by entitlement sync.
const (
	AttrCleartextPassword = "Cleartext-Password"
	AttrReplyMessage      = "Reply-Message"
	AttrFramedIPAddress   = "Framed-IP-Address"
)

// OpAssign is the FreeRADIUS check/reply operator for value assignment.
const OpAssign = ":="

// ActiveGroupPriority is the priority assigned to the single active
// group-membership row a subscriber holds.
const ActiveGroupPriority = 1

// Store mutates authorization records keyed by username. Implementations
// must keep the invariant of exactly one group-membership row per
// subscriber: ReplaceUserGroup is a wholesale delete-then-insert.
type Store interface {
	// UpsertCheckAttribute writes a check attribute (e.g. the subscriber's
	// secret), replacing any existing row for the same username/attribute.
	UpsertCheckAttribute(ctx context.Context, username, attribute, value string) error

	// ReplaceUserGroup removes every group membership for the username and
	// inserts a single row for the given group at the given priority.
	ReplaceUserGroup(ctx context.Context, username, groupName string, priority int) error

	// UpsertReplyAttribute writes a reply attribute (e.g. a pinned static
	// IP), replacing any existing row for the same username/attribute.
	UpsertReplyAttribute(ctx context.Context, username, attribute, value string) error

	// RemoveReplyAttribute deletes all reply rows for the username/attribute
	// pair. Removing an absent attribute is not an error.
	RemoveReplyAttribute(ctx context.Context, username, attribute string) error
}

// SessionInvalidator forces a subscriber's live session to drop so the next
// authentication picks up updated authorization data (CoA/disconnect).
type SessionInvalidator interface {
	// ForceReauthentication returns true when a live session was dropped,
	// false when the subscriber had no active session. Both are normal
	// outcomes; only transport or NAS errors are reported as errors.
	ForceReauthentication(ctx context.Context, username string) (bool, error)
}
