package faults

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errDuplicate = New(KindAlreadyExists, "the given id already exists")

func TestKindOfWalksWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("create order: %w", errDuplicate)
	assert.Equal(t, KindAlreadyExists, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, errDuplicate))
	assert.Equal(t, "the given id already exists", Message(wrapped))

	assert.Equal(t, KindTransport, KindOf(context.DeadlineExceeded))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, "internal server error", Message(errors.New("boom")))
}

func TestTransportMappings(t *testing.T) {
	assert.Equal(t, http.StatusPreconditionFailed, HTTPStatus(KindFailedPrecondition))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindAlreadyExists))
	assert.Equal(t, codes.FailedPrecondition, GRPCCode(KindFailedPrecondition))
	assert.Equal(t, codes.NotFound, GRPCCode(KindNotFound))

	st, ok := status.FromError(ToGRPC(New(KindNotFound, "customer not found")))
	assert.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "customer not found", st.Message())
}

func TestFromGRPCClassifiesRemoteStatus(t *testing.T) {
	notFound := FromGRPC(status.Error(codes.NotFound, "customer not found"))
	assert.True(t, Is(notFound, KindNotFound))

	unavailable := FromGRPC(status.Error(codes.Unavailable, "connection refused"))
	assert.True(t, Is(unavailable, KindTransport))

	assert.Nil(t, FromGRPC(nil))
}
