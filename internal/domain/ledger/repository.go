package ledger

import "context"

// Repository is the persistence port for ledger entries.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error

	// ExistsByReference reports whether an entry with the given reference
	// was already recorded. Callers use it as the idempotency check before
	// inserting.
	ExistsByReference(ctx context.Context, reference string) (bool, error)
}
