package notification

import "time"

// AttemptRecord is an append-only audit row written for every delivery
// attempt, successful or not, so operational failures stay diagnosable
// even when delivery eventually succeeds via a backup channel.
type AttemptRecord struct {
	id           uint
	phone        string
	message      string
	status       AttemptStatus
	providerName string
	providerType ProviderType
	response     string
	sentAt       time.Time
}

// NewAttemptRecord creates an audit row for one delivery attempt. The
// response field carries the raw provider response on success or the error
// detail on failure.
func NewAttemptRecord(phone, message string, status AttemptStatus, providerName string, providerType ProviderType, response string, sentAt time.Time) *AttemptRecord {
	return &AttemptRecord{
		phone:        phone,
		message:      message,
		status:       status,
		providerName: providerName,
		providerType: providerType,
		response:     response,
		sentAt:       sentAt.UTC(),
	}
}

// ReconstructAttemptRecord rebuilds an audit row from persistence.
func ReconstructAttemptRecord(id uint, phone, message string, status AttemptStatus, providerName string, providerType ProviderType, response string, sentAt time.Time) *AttemptRecord {
	return &AttemptRecord{
		id:           id,
		phone:        phone,
		message:      message,
		status:       status,
		providerName: providerName,
		providerType: providerType,
		response:     response,
		sentAt:       sentAt,
	}
}

// SetID writes back the auto-generated ID after insert.
func (a *AttemptRecord) SetID(id uint) { a.id = id }

func (a *AttemptRecord) ID() uint                   { return a.id }
func (a *AttemptRecord) Phone() string              { return a.phone }
func (a *AttemptRecord) Message() string            { return a.message }
func (a *AttemptRecord) Status() AttemptStatus      { return a.status }
func (a *AttemptRecord) ProviderName() string       { return a.providerName }
func (a *AttemptRecord) ProviderType() ProviderType { return a.providerType }
func (a *AttemptRecord) Response() string           { return a.response }
func (a *AttemptRecord) SentAt() time.Time          { return a.sentAt }
