// Package faults is the error taxonomy shared by every orderflow service.
//
// Services declare sentinel errors with New and transports translate them
// through KindOf, HTTPStatus and GRPCCode.
package faults

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Kind string

const (
	KindInvalidArgument    Kind = "invalid_argument"
	KindAlreadyExists      Kind = "already_exists"
	KindNotFound           Kind = "not_found"
	KindFailedPrecondition Kind = "failed_precondition"
	KindTransport          Kind = "transport_error"
	KindUnhandledEvent     Kind = "unhandled_event"
	KindInternal           Kind = "internal"
)

// Error is a classified failure. Message is safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the outermost classified error in the chain.
// Unclassified context errors count as transport failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindTransport
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the caller-facing message for err. Internal failures are
// never echoed back verbatim.
func Message(err error) string {
	var classified *Error
	if errors.As(err, &classified) && classified.Kind != KindInternal {
		return classified.Message
	}
	if KindOf(err) == KindTransport {
		return "dependency call failed"
	}
	return "internal server error"
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindAlreadyExists:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindFailedPrecondition:
		return http.StatusPreconditionFailed
	case KindTransport:
		return http.StatusBadGateway
	case KindUnhandledEvent:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func GRPCCode(kind Kind) codes.Code {
	switch kind {
	case KindInvalidArgument:
		return codes.InvalidArgument
	case KindAlreadyExists:
		return codes.AlreadyExists
	case KindNotFound:
		return codes.NotFound
	case KindFailedPrecondition:
		return codes.FailedPrecondition
	case KindTransport:
		return codes.Unavailable
	case KindUnhandledEvent:
		return codes.Unimplemented
	default:
		return codes.Internal
	}
}

// ToGRPC converts err into a status error for gRPC servers.
func ToGRPC(err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if !errors.As(err, &classified) {
		if _, ok := status.FromError(err); ok {
			return err
		}
	}
	return status.Error(GRPCCode(KindOf(err)), Message(err))
}

// FromGRPC classifies an error returned by a gRPC client call.
func FromGRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return Wrap(KindTransport, "remote call failed", err)
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return Wrap(KindInvalidArgument, st.Message(), err)
	case codes.AlreadyExists:
		return Wrap(KindAlreadyExists, st.Message(), err)
	case codes.NotFound:
		return Wrap(KindNotFound, st.Message(), err)
	case codes.FailedPrecondition:
		return Wrap(KindFailedPrecondition, st.Message(), err)
	default:
		return Wrap(KindTransport, "remote call failed", err)
	}
}
