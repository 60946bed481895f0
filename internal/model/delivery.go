package model

import "time"

// Delivery represents one delivery attempt recorded in the delivery log
type Delivery struct {
	ID        string    `json:"id"`
	MessageID *string   `json:"messageId,omitempty"`
	Endpoint  string    `json:"endpoint"`
	Provider  string    `json:"provider"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	Error     *string   `json:"error,omitempty"`
	ClientIP  *string   `json:"clientIp,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Delivery statuses
const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// Endpoint names used in the delivery log and metrics
const (
	EndpointContactForm = "contact-form"
	EndpointSendEmail   = "send-email"
	EndpointTestEmail   = "test-email"
	EndpointStartup     = "startup"
)
