package usecase

import (
	"errors"

	"github.com/xavierca1/leadflow/internal/entity"
)

// NotFoundError covers decision callbacks that reference an approval id
// that expired, was cleaned up, or never existed. Callbacks are an
// untrusted surface, so this must stay a graceful error.
type NotFoundError struct {
	ApprovalID string
}

func (e *NotFoundError) Error() string {
	return "approval " + e.ApprovalID + " not found (expired or invalid)"
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) || errors.Is(err, entity.ErrApprovalNotFound)
}

// GatewayError wraps a failed CRM or notification call. During an
// approve it blocks the transition and is retryable; for notifications
// it is logged-only.
type GatewayError struct {
	Service string
	Err     error
}

func (e *GatewayError) Error() string {
	return e.Service + " gateway error: " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}

// ValidationError covers malformed inbound payloads.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
