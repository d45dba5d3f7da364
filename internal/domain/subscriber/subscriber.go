package subscriber

import (
	"fmt"
	"time"
)

// Subscriber is the aggregate root for a network customer. The username is
// the stable join key into the RADIUS authorization store and never changes.
type Subscriber struct {
	id        uint
	name      string
	username  string
	secret    string
	phone     string
	status    Status
	expiresAt *time.Time
	staticIP  *string
	profileID uint
	createdAt time.Time
	updatedAt time.Time
}

func NewSubscriber(name, username, secret, phone string, profileID uint) (*Subscriber, error) {
	if name == "" {
		return nil, fmt.Errorf("subscriber name is required")
	}
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if secret == "" {
		return nil, fmt.Errorf("secret is required")
	}
	if profileID == 0 {
		return nil, fmt.Errorf("profile ID is required")
	}

	now := time.Now().UTC()
	return &Subscriber{
		name:      name,
		username:  username,
		secret:    secret,
		phone:     phone,
		status:    StatusActive,
		profileID: profileID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// SubscriberReconstructParams carries persisted state back into the aggregate.
type SubscriberReconstructParams struct {
	ID        uint
	Name      string
	Username  string
	Secret    string
	Phone     string
	Status    Status
	ExpiresAt *time.Time
	StaticIP  *string
	ProfileID uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReconstructSubscriber rebuilds a subscriber from persistence.
func ReconstructSubscriber(params SubscriberReconstructParams) (*Subscriber, error) {
	if params.ID == 0 {
		return nil, fmt.Errorf("subscriber ID cannot be zero")
	}
	if params.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if !params.Status.IsValid() {
		return nil, fmt.Errorf("invalid subscriber status: %s", params.Status)
	}

	return &Subscriber{
		id:        params.ID,
		name:      params.Name,
		username:  params.Username,
		secret:    params.Secret,
		phone:     params.Phone,
		status:    params.Status,
		expiresAt: params.ExpiresAt,
		staticIP:  params.StaticIP,
		profileID: params.ProfileID,
		createdAt: params.CreatedAt,
		updatedAt: params.UpdatedAt,
	}, nil
}

// ExtendExpiry moves the service expiry forward.
func (s *Subscriber) ExtendExpiry(expiresAt time.Time) {
	utc := expiresAt.UTC()
	s.expiresAt = &utc
	s.updatedAt = time.Now().UTC()
}

// Activate restores full service after a reactivating payment.
func (s *Subscriber) Activate() {
	s.status = StatusActive
	s.updatedAt = time.Now().UTC()
}

// NeedsReactivation reports whether the subscriber is in a state that a
// paid invoice should lift (isolated, suspended or expired).
func (s *Subscriber) NeedsReactivation() bool {
	return s.status.NeedsReactivation()
}

// SetID writes back the auto-generated ID after insert.
func (s *Subscriber) SetID(id uint) { s.id = id }

func (s *Subscriber) ID() uint              { return s.id }
func (s *Subscriber) Name() string          { return s.name }
func (s *Subscriber) Username() string      { return s.username }
func (s *Subscriber) Secret() string        { return s.secret }
func (s *Subscriber) Phone() string         { return s.phone }
func (s *Subscriber) Status() Status        { return s.status }
func (s *Subscriber) ExpiresAt() *time.Time { return s.expiresAt }
func (s *Subscriber) StaticIP() *string     { return s.staticIP }
func (s *Subscriber) ProfileID() uint       { return s.profileID }
func (s *Subscriber) CreatedAt() time.Time  { return s.createdAt }
func (s *Subscriber) UpdatedAt() time.Time  { return s.updatedAt }
