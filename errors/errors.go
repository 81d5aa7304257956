package errors

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrWorkerPanic          = fmt.Errorf("worker panic")
	ErrEmptyContent         = fmt.Errorf("message content is empty")
	ErrInvalidIdentity      = fmt.Errorf("identity is missing or invalid")
	ErrInvalidAppointment   = fmt.Errorf("appointment request is incomplete")
	ErrSubmissionInProgress = fmt.Errorf("a submission is already in progress")
	ErrFormClosed           = fmt.Errorf("form is closed")
	ErrProfileNotFound      = fmt.Errorf("profile not found")
)

// MapToGRPCError translates domain errors into gRPC status errors.
// Unknown errors are reported as Internal without leaking their message.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case errors.Is(err, ErrEmptyContent), errors.Is(err, ErrInvalidAppointment):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrInvalidIdentity):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, ErrSubmissionInProgress), errors.Is(err, ErrFormClosed):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, ErrProfileNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
