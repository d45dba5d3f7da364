package notification

import (
	"fmt"
	"strings"
)

// AttemptFailure records why one provider failed during failover dispatch.
type AttemptFailure struct {
	ProviderName string
	ProviderType ProviderType
	Reason       string
}

// AllFailedError is raised when every active provider was exhausted without
// a successful delivery. It aggregates each provider's failure reason.
type AllFailedError struct {
	Phone    string
	Failures []AttemptFailure
}

func (e *AllFailedError) Error() string {
	reasons := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		reasons = append(reasons, fmt.Sprintf("%s (%s): %s", f.ProviderName, f.ProviderType, f.Reason))
	}
	return fmt.Sprintf("all %d notification providers failed for %s: %s",
		len(e.Failures), e.Phone, strings.Join(reasons, "; "))
}
