package subscriber

import (
	"context"
	"errors"
)

var (
	// ErrSubscriberNotFound is returned by repositories when no subscriber matches.
	ErrSubscriberNotFound = errors.New("subscriber not found")
	// ErrProfileNotFound is returned by repositories when no profile matches.
	ErrProfileNotFound = errors.New("profile not found")
)

// SubscriberRepository is the persistence port for subscribers.
type SubscriberRepository interface {
	Create(ctx context.Context, sub *Subscriber) error
	Update(ctx context.Context, sub *Subscriber) error
	GetByID(ctx context.Context, id uint) (*Subscriber, error)
	GetByUsername(ctx context.Context, username string) (*Subscriber, error)
}

// ProfileRepository is the persistence port for service profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uint) (*Profile, error)
}
