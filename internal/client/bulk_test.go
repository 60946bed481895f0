package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailgateway "github.com/shashiX07/email-service/sdk/go"
)

type fakeSender struct {
	mu     sync.Mutex
	calls  []mailgateway.Email
	at     []time.Time
	failOn map[string]error
}

func (f *fakeSender) SendEmail(_ context.Context, e mailgateway.Email) (*mailgateway.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, e)
	f.at = append(f.at, time.Now())
	if err := f.failOn[e.To]; err != nil {
		return nil, err
	}
	return &mailgateway.SendResult{Success: true, MessageID: "<" + e.To + ">"}, nil
}

func TestBulkSenderRun(t *testing.T) {
	sender := &fakeSender{failOn: map[string]error{
		"b@x.com": &mailgateway.APIError{StatusCode: 500, Message: "Failed to send email"},
		"c@x.com": &mailgateway.RateLimitError{Message: "Too many email requests, please try again later."},
	}}
	b := NewBulkSender(sender, time.Millisecond)

	var progress []Progress
	report := b.Run(context.Background(),
		[]string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"},
		mailgateway.Email{Subject: "Hello", Content: "<p>Hi</p>"},
		func(p Progress) { progress = append(progress, p) },
	)

	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Results, 4)
	assert.Equal(t, RecipientResult{Email: "a@x.com", Success: true, Message: "Sent successfully", MessageID: "<a@x.com>"}, report.Results[0])
	assert.Equal(t, "Failed to send email", report.Results[1].Message)
	assert.Equal(t, "Too many email requests, please try again later.", report.Results[2].Message)
	assert.True(t, report.Results[3].Success)

	// Every recipient was attempted despite failures, each with its own To
	require.Len(t, sender.calls, 4)
	for i, to := range []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"} {
		assert.Equal(t, to, sender.calls[i].To)
		assert.Equal(t, "Hello", sender.calls[i].Subject)
	}

	require.Len(t, progress, 4)
	assert.Equal(t, Progress{Index: 4, Total: 4, Recipient: "d@x.com", Sent: 2, Failed: 2}, progress[3])
	assert.Equal(t, float64(100), progress[3].Percent())
	assert.Equal(t, float64(25), progress[0].Percent())
}

func TestBulkSenderPacing(t *testing.T) {
	sender := &fakeSender{}
	interval := 30 * time.Millisecond
	b := NewBulkSender(sender, interval)

	b.Run(context.Background(), []string{"a@x.com", "b@x.com", "c@x.com"}, mailgateway.Email{}, nil)

	require.Len(t, sender.at, 3)
	for i := 1; i < len(sender.at); i++ {
		// rate.Limiter allows a little slack around the interval
		assert.GreaterOrEqual(t, sender.at[i].Sub(sender.at[i-1]), interval-5*time.Millisecond)
	}
}

func TestBulkSenderCancelledContext(t *testing.T) {
	sender := &fakeSender{}
	b := NewBulkSender(sender, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := b.Run(ctx, []string{"a@x.com", "b@x.com"}, mailgateway.Email{}, nil)
	assert.Equal(t, 2, report.Failed)
	assert.Empty(t, sender.calls)
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "boom", failureMessage(errors.New("boom")))
	assert.Equal(t, mailgateway.ErrAPIKeyInvalid.Error(), failureMessage(mailgateway.ErrAPIKeyInvalid))
}

func TestDefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultBulkInterval, NewBulkSender(&fakeSender{}, 0).interval)
}
