package client

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	mailgateway "github.com/shashiX07/email-service/sdk/go"
)

// DefaultBulkInterval is the pause between consecutive bulk sends
const DefaultBulkInterval = 500 * time.Millisecond

// Sender sends a single message through the gateway
type Sender interface {
	SendEmail(ctx context.Context, email mailgateway.Email) (*mailgateway.SendResult, error)
}

// RecipientResult is the outcome for one bulk recipient
type RecipientResult struct {
	Email     string `json:"email"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
}

// Progress is reported after every recipient
type Progress struct {
	Index     int
	Total     int
	Recipient string
	Sent      int
	Failed    int
}

// Percent returns the completed share of the batch
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return float64(p.Index) / float64(p.Total) * 100
}

// BulkReport summarizes a finished batch
type BulkReport struct {
	Results []RecipientResult `json:"results"`
	Sent    int               `json:"sent"`
	Failed  int               `json:"failed"`
}

// BulkSender sends one message per recipient, strictly in sequence, with a
// fixed pause between sends. Failures are recorded and never stop the batch.
type BulkSender struct {
	sender   Sender
	interval time.Duration
}

// NewBulkSender creates a BulkSender. A non-positive interval uses
// DefaultBulkInterval.
func NewBulkSender(sender Sender, interval time.Duration) *BulkSender {
	if interval <= 0 {
		interval = DefaultBulkInterval
	}
	return &BulkSender{sender: sender, interval: interval}
}

// Run sends msg to every recipient. The To field of msg is ignored.
// progress may be nil.
func (b *BulkSender) Run(ctx context.Context, recipients []string, msg mailgateway.Email, progress func(Progress)) *BulkReport {
	limiter := rate.NewLimiter(rate.Every(b.interval), 1)
	report := &BulkReport{Results: make([]RecipientResult, 0, len(recipients))}

	for i, to := range recipients {
		res := b.sendOne(ctx, limiter, to, msg)
		if res.Success {
			report.Sent++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, res)

		if progress != nil {
			progress(Progress{
				Index:     i + 1,
				Total:     len(recipients),
				Recipient: to,
				Sent:      report.Sent,
				Failed:    report.Failed,
			})
		}
	}

	return report
}

func (b *BulkSender) sendOne(ctx context.Context, limiter *rate.Limiter, to string, msg mailgateway.Email) RecipientResult {
	if err := limiter.Wait(ctx); err != nil {
		return RecipientResult{Email: to, Message: err.Error()}
	}

	msg.To = to
	res, err := b.sender.SendEmail(ctx, msg)
	if err != nil {
		return RecipientResult{Email: to, Message: failureMessage(err)}
	}
	return RecipientResult{Email: to, Success: true, Message: "Sent successfully", MessageID: res.MessageID}
}

// failureMessage prefers the gateway's own error text
func failureMessage(err error) string {
	if apiErr, ok := mailgateway.IsAPIError(err); ok {
		return apiErr.Message
	}
	var rl *mailgateway.RateLimitError
	if errors.As(err, &rl) {
		return rl.Message
	}
	return err.Error()
}
