package errors

import "orderflow/internal/shared/faults"

var (
	ErrEntityMissing       = faults.New(faults.KindInvalidArgument, "'entity' is missing")
	ErrEntityIDMissing     = faults.New(faults.KindInvalidArgument, "'entity_id' is missing")
	ErrEntityAlreadyExists = faults.New(faults.KindAlreadyExists, "the given id already exists")
	ErrEntityNotFound      = faults.New(faults.KindNotFound, "entity not found")
)
