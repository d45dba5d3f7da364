package notification

// ProviderType is the closed set of delivery channel kinds. Adding a
// channel means adding a variant here plus one adapter, not branching
// deeper inside the dispatcher.
type ProviderType string

const (
	// ProviderTypeWablas authenticates with a device token in the
	// Authorization header.
	ProviderTypeWablas ProviderType = "wablas"
	// ProviderTypeMPWA authenticates with an API key in the request body.
	ProviderTypeMPWA ProviderType = "mpwa"
	// ProviderTypeNusaSMS authenticates with HTTP basic auth.
	ProviderTypeNusaSMS ProviderType = "nusasms"
)

func (t ProviderType) IsValid() bool {
	switch t {
	case ProviderTypeWablas, ProviderTypeMPWA, ProviderTypeNusaSMS:
		return true
	}
	return false
}

func (t ProviderType) String() string {
	return string(t)
}

// AttemptStatus is the outcome of a single delivery attempt.
type AttemptStatus string

const (
	AttemptStatusSent   AttemptStatus = "sent"
	AttemptStatusFailed AttemptStatus = "failed"
)

func (s AttemptStatus) String() string {
	return string(s)
}
