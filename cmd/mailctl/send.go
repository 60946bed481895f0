package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiX07/email-service/internal/client"
	mailgateway "github.com/shashiX07/email-service/sdk/go"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the gateway is reachable",
		RunE: runE(func(a *app, cmd *cobra.Command, args []string) error {
			cfg, err := client.LoadConfig(a.store)
			if err != nil {
				return err
			}
			gw := mailgateway.NewClient(mailgateway.Config{BaseURL: cfg.APIEndpoint, APIKey: cfg.APIKey})

			h, err := gw.Health(cmd.Context())
			if err != nil {
				return err
			}
			a.notify.Success("Gateway Healthy", fmt.Sprintf("%s (smtp configured: %t, %s)",
				h.Message, h.SMTPConfigured, formatTime(h.Timestamp)))
			return nil
		}),
	}
}

func newTestSMTPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-smtp",
		Short: "Ask the gateway to verify the saved SMTP settings",
		RunE: runE(func(a *app, cmd *cobra.Command, args []string) error {
			gw, cfg, err := a.gateway()
			if err != nil {
				return err
			}

			port, err := strconv.Atoi(cfg.SMTP.Port)
			if err != nil {
				return fmt.Errorf("invalid smtp port %q", cfg.SMTP.Port)
			}
			err = gw.TestSMTP(cmd.Context(), mailgateway.SMTPSettings{
				Host:   cfg.SMTP.Host,
				Port:   port,
				Secure: cfg.SMTP.Secure,
				User:   cfg.SMTP.User,
				Pass:   cfg.SMTP.Pass,
			})
			if err != nil {
				if apiErr, ok := mailgateway.IsAPIError(err); ok && apiErr.DetailText() != "" {
					return fmt.Errorf("%s: %s", apiErr.Message, apiErr.DetailText())
				}
				return err
			}
			a.notify.Success("SMTP Verified", fmt.Sprintf("%s:%s accepted the credentials", cfg.SMTP.Host, cfg.SMTP.Port))
			return nil
		}),
	}
}

// messageFlags are shared by send and bulk
type messageFlags struct {
	subject     string
	content     string
	contentFile string
	from        string
	fromName    string
	replyTo     string
	text        bool
	signature   bool
}

func (f *messageFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.subject, "subject", "s", "", "subject line")
	fs.StringVarP(&f.content, "content", "c", "", "message body")
	fs.StringVar(&f.contentFile, "content-file", "", "read the message body from a file")
	fs.StringVar(&f.from, "from", "", "sender address (default: saved default)")
	fs.StringVar(&f.fromName, "from-name", "", "sender name (default: saved default)")
	fs.StringVar(&f.replyTo, "reply-to", "", "reply-to address")
	fs.BoolVar(&f.text, "text", false, "send the body as plain text")
	fs.BoolVar(&f.signature, "signature", false, "append the saved signature")
}

// build assembles the message template; To is filled per recipient
func (f *messageFlags) build(a *app, cfg *client.Config) (mailgateway.Email, error) {
	content := f.content
	if f.contentFile != "" {
		b, err := os.ReadFile(f.contentFile)
		if err != nil {
			return mailgateway.Email{}, fmt.Errorf("failed to read content: %w", err)
		}
		content = string(b)
	}
	if strings.TrimSpace(f.subject) == "" || strings.TrimSpace(content) == "" {
		return mailgateway.Email{}, errors.New("subject and content are required")
	}

	isHTML := !f.text
	if f.signature && isHTML {
		sig, err := client.LoadSignature(a.store)
		if err != nil {
			return mailgateway.Email{}, err
		}
		content = sig.Append(content)
	}

	msg := mailgateway.Email{
		Subject:  f.subject,
		Content:  content,
		From:     f.from,
		FromName: f.fromName,
		ReplyTo:  f.replyTo,
		IsHTML:   &isHTML,
	}
	if msg.From == "" {
		msg.From = cfg.DefaultFromEmail
	}
	if msg.FromName == "" {
		msg.FromName = cfg.DefaultFromName
	}
	return msg, nil
}

func newSendCmd() *cobra.Command {
	var (
		to    string
		flags messageFlags
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one email through the gateway",
		RunE: runE(func(a *app, cmd *cobra.Command, args []string) error {
			gw, cfg, err := a.gateway()
			if err != nil {
				return err
			}

			msg, err := flags.build(a, cfg)
			if err != nil {
				return err
			}
			msg.To = to
			if msg.To == "" {
				msg.To = cfg.DefaultToEmail
			}
			if msg.To == "" {
				return errors.New("recipient is required")
			}

			res, err := gw.SendEmail(cmd.Context(), msg)
			if err != nil {
				return err
			}
			a.notify.Success("Email Sent!", fmt.Sprintf("Message %s delivered to %s", res.MessageID, msg.To))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&to, "to", "t", "", "recipient address (default: saved default)")
	flags.register(cmd)
	return cmd
}

func newBulkCmd() *cobra.Command {
	var (
		recipients     string
		recipientsFile string
		interval       time.Duration
		flags          messageFlags
	)

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Send the same email to many recipients, one at a time",
		RunE: runE(func(a *app, cmd *cobra.Command, args []string) error {
			gw, cfg, err := a.gateway()
			if err != nil {
				return err
			}

			list := recipients
			if recipientsFile != "" {
				b, err := os.ReadFile(recipientsFile)
				if err != nil {
					return fmt.Errorf("failed to read recipients: %w", err)
				}
				list = string(b)
			}
			addrs := client.ParseRecipients(list)
			if len(addrs) == 0 {
				return errors.New("no valid recipients")
			}

			msg, err := flags.build(a, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			report := client.NewBulkSender(gw, interval).Run(cmd.Context(), addrs, msg, func(p client.Progress) {
				fmt.Fprintf(out, "[%3.0f%%] %d/%d sent=%d failed=%d %s\n",
					p.Percent(), p.Index, p.Total, p.Sent, p.Failed, p.Recipient)
			})

			fmt.Fprintln(out, "Results:")
			for _, r := range report.Results {
				if r.Success {
					a.notify.Success(r.Email, fmt.Sprintf("%s (%s)", r.Message, r.MessageID))
				} else {
					a.notify.Error(r.Email, r.Message)
				}
			}

			summary := fmt.Sprintf("%d sent, %d failed", report.Sent, report.Failed)
			switch {
			case report.Failed == 0:
				a.notify.Success("Bulk Send Complete", summary)
			case report.Sent == 0:
				a.notify.Error("Bulk Send Failed", summary)
				return errors.New("no emails were sent")
			default:
				a.notify.Warning("Bulk Send Finished", summary)
			}
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&recipients, "recipients", "", "comma or newline separated addresses")
	f.StringVar(&recipientsFile, "recipients-file", "", "file of comma or newline separated addresses")
	f.DurationVar(&interval, "interval", client.DefaultBulkInterval, "pause between sends")
	flags.register(cmd)
	return cmd
}

var _ client.Sender = (*mailgateway.Client)(nil)
