package runtime

import "github.com/aretw0/switchboard/pkg/domain"

// Classify turns a single record into a toggle, without looking at any other record.
//
// The base kind is chosen by precedence: established, then date range (either
// bound present), then boolean. A record with dependencies is wrapped last, so
// the wrapper is orthogonal to the base kind. Classification never fails.
func Classify(rec domain.Record, clock domain.Clock) *domain.Toggle {
	var toggle *domain.Toggle
	switch {
	case rec.Established:
		toggle = domain.NewEstablished(rec.Name)
	case rec.HasDates():
		toggle = domain.NewDateRange(rec.Name, rec.Enabled, rec.From, rec.Until, clock)
	default:
		toggle = domain.NewBoolean(rec.Name, rec.Enabled)
	}

	if !rec.HasDependencies() {
		return toggle
	}
	return domain.Wrap(toggle)
}
