package email

import (
	"context"
	"fmt"

	"github.com/shashiX07/email-service/internal/model"
)

// Transport is the interface every delivery backend implements.
// Implementations make exactly one attempt per call and never retry.
type Transport interface {
	// Name returns the provider name used in logs and metrics
	Name() string
	// Verify performs a connectivity and authentication handshake without sending
	Verify(ctx context.Context) error
	// Send submits the message and returns its delivery identifier
	Send(ctx context.Context, msg *model.OutboundMessage) (string, error)
}

// DeliveryError wraps a transport failure with the upstream diagnostic
type DeliveryError struct {
	Provider string
	Op       string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Transport operations reported in DeliveryError.Op
const (
	OpVerify = "verify"
	OpSend   = "send"
)

func deliveryError(provider, op string, err error) error {
	if err == nil {
		return nil
	}
	return &DeliveryError{Provider: provider, Op: op, Err: err}
}
