package subscriber

import "time"

// NextExpiry computes a subscriber's new service expiry after a payment.
//
// The period is always added to the current recorded expiry, never to the
// payment time, so a recurring plan keeps its billing anchor day even when
// payment arrives late: a monthly plan due on the 5th stays due on the 5th.
// A nil current expiry falls back to now as the base.
//
// Months and days use calendar arithmetic via time.AddDate, inheriting Go's
// normalization for month overflow (Jan 31 + 1 month = Mar 2 or Mar 3).
func NextExpiry(current *time.Time, value int, unit ValidityUnit, now time.Time) time.Time {
	base := now.UTC()
	if current != nil {
		base = current.UTC()
	}

	switch unit {
	case ValidityMinutes:
		return base.Add(time.Duration(value) * time.Minute)
	case ValidityHours:
		return base.Add(time.Duration(value) * time.Hour)
	case ValidityDays:
		return base.AddDate(0, 0, value)
	case ValidityMonths:
		return base.AddDate(0, value, 0)
	default:
		return base
	}
}
