package errors

import "orderflow/internal/shared/faults"

var (
	ErrEventIDMissing       = faults.New(faults.KindInvalidArgument, "event id is missing")
	ErrMalformedPayload     = faults.New(faults.KindInvalidArgument, "event payload is malformed")
	ErrEventPayloadConflict = faults.New(faults.KindFailedPrecondition, "event id replayed with a different payload")
	ErrUnknownHandler       = faults.New(faults.KindInvalidArgument, "unknown activity handler")
)
