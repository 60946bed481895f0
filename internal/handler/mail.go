package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/shashiX07/email-service/internal/email"
	"github.com/shashiX07/email-service/internal/middleware"
	"github.com/shashiX07/email-service/internal/model"
	"github.com/shashiX07/email-service/internal/validation"
)

// ContactForm relays a contact-form submission to the configured inbox
func (h *Handler) ContactForm(w http.ResponseWriter, r *http.Request) {
	var req model.ContactSubmission
	if err := h.readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	res, err := h.mail.SubmitContact(r.Context(), &req, middleware.ClientIP(r))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to send contact form")
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{
		Success:   true,
		Message:   "Contact form submitted successfully",
		MessageID: res.MessageID,
		Timestamp: timestamp(res.SentAt),
	})
}

// SendEmail relays a caller-addressed message
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req model.SendRequest
	if err := h.readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	res, err := h.mail.SendEmail(r.Context(), &req, middleware.ClientIP(r))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to send email")
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{
		Success:   true,
		Message:   "Email sent successfully",
		MessageID: res.MessageID,
		Timestamp: timestamp(res.SentAt),
	})
}

// TestSMTP verifies caller-supplied SMTP credentials without sending. The
// upstream diagnostic is always returned since the credentials are the
// caller's own.
func (h *Handler) TestSMTP(w http.ResponseWriter, r *http.Request) {
	var req model.SMTPSettings
	if err := h.readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	err := h.mail.TestSMTP(r.Context(), &req)
	var verr *validation.Error
	var derr *email.DeliveryError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, SuccessResponse{
			Success:   true,
			Message:   "SMTP connection verified successfully",
			Timestamp: timestamp(time.Now()),
		})
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error(), verr.Fields())
	case errors.As(err, &derr):
		writeError(w, http.StatusInternalServerError, "SMTP connection failed", derr.Err.Error())
	default:
		h.writeServiceError(w, r, err, "SMTP connection failed")
	}
}

// TestEmail sends the startup notification to the configured inbox
func (h *Handler) TestEmail(w http.ResponseWriter, r *http.Request) {
	res, err := h.mail.SendStartupNotification(r.Context(), model.EndpointTestEmail)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to send test email")
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{
		Success:   true,
		Message:   "Test email sent successfully",
		MessageID: res.MessageID,
		Timestamp: timestamp(res.SentAt),
	})
}
