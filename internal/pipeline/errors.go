package pipeline

import (
	"errors"
	"fmt"
)

// ErrMissingInput is returned when the raw table is absent or empty. There is
// nothing meaningful to process, so the whole run aborts.
var ErrMissingInput = errors.New("pipeline: raw table is empty")

// MalformedTimestampError reports a published_at value that could not be
// parsed. It carries enough context to diagnose the record without
// reprocessing the batch.
type MalformedTimestampError struct {
	VideoID string
	Field   string
	Value   string
	Err     error
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("pipeline: malformed %s %q for video %s: %v", e.Field, e.Value, e.VideoID, e.Err)
}

func (e *MalformedTimestampError) Unwrap() error {
	return e.Err
}

// InvalidConfigurationError reports a lookup table that is structurally
// unusable (e.g. tier bins not covering [0, inf)). Raised at construction
// time only, never per record.
type InvalidConfigurationError struct {
	Table  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("pipeline: invalid configuration in %s: %s", e.Table, e.Reason)
}
