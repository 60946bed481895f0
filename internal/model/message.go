package model

// OutboundMessage is a fully composed email ready for a transport
type OutboundMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
	From     string
	FromName string
	ReplyTo  string
	IsHTML   bool
	// MessageID is the Message-ID header value, generated at compose time
	MessageID string
}

// ContactSubmission is the payload of the contact-form endpoint
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	APIKey  string `json:"apiKey,omitempty"`
}

// SendRequest is the payload of the generic send endpoint
type SendRequest struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Content  string `json:"content"`
	From     string `json:"from,omitempty"`
	FromName string `json:"fromName,omitempty"`
	ReplyTo  string `json:"replyTo,omitempty"`
	IsHTML   *bool  `json:"isHtml,omitempty"`
	APIKey   string `json:"apiKey,omitempty"`
}

// HTML reports whether content should be treated as HTML. Defaults to true.
func (r SendRequest) HTML() bool {
	return r.IsHTML == nil || *r.IsHTML
}

// SMTPSettings is the payload of the transport test endpoint
type SMTPSettings struct {
	Host   string `json:"host"`
	Port   Port   `json:"port"`
	Secure bool   `json:"secure"`
	User   string `json:"user"`
	Pass   string `json:"pass"`
	APIKey string `json:"apiKey,omitempty"`
}
