package domain

import "errors"

// ErrUnknownIndicator is returned when a requested indicator name is not in
// the registry. It is the only fetch failure surfaced to callers; provider
// errors are absorbed into an empty TimeSeries at the normalizer boundary.
var ErrUnknownIndicator = errors.New("unknown indicator")
