package subscriber

// Status represents the subscriber's service state. Only active subscribers
// authenticate with their full profile; the other states map to degraded or
// denied network access.
type Status string

const (
	StatusActive    Status = "active"
	StatusIsolated  Status = "isolated"
	StatusSuspended Status = "suspended"
	StatusExpired   Status = "expired"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusIsolated, StatusSuspended, StatusExpired:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// NeedsReactivation reports whether a paid invoice should restore the
// subscriber's entitlement and drop its live session.
func (s Status) NeedsReactivation() bool {
	return s == StatusIsolated || s == StatusSuspended || s == StatusExpired
}

// ValidityUnit is the unit of a profile's validity period.
type ValidityUnit string

const (
	ValidityMinutes ValidityUnit = "minutes"
	ValidityHours   ValidityUnit = "hours"
	ValidityDays    ValidityUnit = "days"
	ValidityMonths  ValidityUnit = "months"
)

func (u ValidityUnit) IsValid() bool {
	switch u {
	case ValidityMinutes, ValidityHours, ValidityDays, ValidityMonths:
		return true
	}
	return false
}

func (u ValidityUnit) String() string {
	return string(u)
}
