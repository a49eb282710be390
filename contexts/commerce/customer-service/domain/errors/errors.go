package errors

import "orderflow/internal/shared/faults"

var (
	ErrCustomerMissing       = faults.New(faults.KindInvalidArgument, "'customer' is missing")
	ErrCustomerIDMissing     = faults.New(faults.KindInvalidArgument, "'customer_id' is missing")
	ErrCustomerAlreadyExists = faults.New(faults.KindAlreadyExists, "the given id already exists")
	ErrCustomerNotFound      = faults.New(faults.KindNotFound, "customer not found")
)
