package errors

import "orderflow/internal/shared/faults"

var (
	ErrOrderMissing             = faults.New(faults.KindInvalidArgument, "'order' is missing")
	ErrCustomerIDMissing        = faults.New(faults.KindInvalidArgument, "'customer_id' is missing")
	ErrTotalAmountMissing       = faults.New(faults.KindInvalidArgument, "total_amount is missing")
	ErrOrderIDMissing           = faults.New(faults.KindInvalidArgument, "'order_id' is missing")
	ErrOrderAlreadyExists       = faults.New(faults.KindAlreadyExists, "the given id already exists")
	ErrOrderNotFound            = faults.New(faults.KindNotFound, "order not found")
	ErrCustomerReferenceMissing = faults.New(faults.KindFailedPrecondition, "order.customer_id does not exist")
)
