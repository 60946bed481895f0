package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shashiX07/email-service/internal/auth"
	"github.com/shashiX07/email-service/internal/client"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the saved client configuration",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSetCmd(), newConfigClearCmd(), newConfigPresetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved configuration",
		RunE: runE(func(a *app, cmd *cobra.Command, args []string) error {
			cfg, err := client.LoadConfig(a.store)
			if err != nil {
				return err
			}

			shown := *cfg
			if !reveal {
				shown.APIKey = maskSecret(cfg.APIKey)
				shown.SMTP.Pass = maskSecret(cfg.SMTP.Pass)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(shown)
		}),
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print secrets in full")
	return cmd
}

// maskSecret replaces a secret with its fingerprint
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "****" + auth.Fingerprint(s)
}

func newConfigSetCmd() *cobra.Command {
	var (
		apiKey, endpoint, from, fromName, to string
		smtpHost, smtpPort, smtpUser, smtpPass string
		smtpSecure                             bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update and save configuration fields",
		RunE: runE(func(a *app, cmd *cobra.Command, args []string) error {
			cfg, err := client.LoadConfig(a.store)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			set := func(name string, dst *string, v string) {
				if flags.Changed(name) {
					*dst = strings.TrimSpace(v)
				}
			}
			set("api-key", &cfg.APIKey, apiKey)
			set("endpoint", &cfg.APIEndpoint, strings.TrimSuffix(endpoint, "/"))
			set("from", &cfg.DefaultFromEmail, from)
			set("from-name", &cfg.DefaultFromName, fromName)
			set("to", &cfg.DefaultToEmail, to)
			set("smtp-host", &cfg.SMTP.Host, smtpHost)
			set("smtp-port", &cfg.SMTP.Port, smtpPort)
			set("smtp-user", &cfg.SMTP.User, smtpUser)
			set("smtp-pass", &cfg.SMTP.Pass, smtpPass)
			if flags.Changed("smtp-secure") {
				cfg.SMTP.Secure = smtpSecure
			}

			if err := client.SaveConfig(a.store, cfg); err != nil {
				return err
			}
			a.notify.Success("Configuration Saved!", "Your settings have been saved")
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&apiKey, "api-key", "", "gateway API key")
	f.StringVar(&endpoint, "endpoint", "", "gateway base URL")
	f.StringVar(&from, "from", "", "default sender address")
	f.StringVar(&fromName, "from-name", "", "default sender name")
	f.StringVar(&to, "to", "", "default recipient address")
	f.StringVar(&smtpHost, "smtp-host", "", "SMTP host for test-smtp")
	f.StringVar(&smtpPort, "smtp-port", "", "SMTP port for test-smtp")
	f.StringVar(&smtpUser, "smtp-user", "", "SMTP user for test-smtp")
	f.StringVar(&smtpPass, "smtp-pass", "", "SMTP password for test-smtp")
	f.BoolVar(&smtpSecure, "smtp-secure", false, "use implicit TLS for test-smtp")
	return cmd
}

func newConfigClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved configuration",
		RunE: runE(func(a *app, cmd *cobra.Command, args []string) error {
			if err := client.ClearConfig(a.store); err != nil {
				return err
			}
			a.notify.Info("Configuration Cleared", "All settings have been reset")
			return nil
		}),
	}
}

func newConfigPresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "preset <provider>",
		Short:     "Fill SMTP host, port and TLS mode from a known provider",
		Long:      "Known providers: " + strings.Join(client.PresetNames(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: client.PresetNames(),
		RunE: runE(func(a *app, cmd *cobra.Command, args []string) error {
			cfg, err := client.LoadConfig(a.store)
			if err != nil {
				return err
			}

			hint, err := cfg.ApplyPreset(args[0])
			if err != nil {
				return err
			}
			if cfg.APIKey == "" {
				return fmt.Errorf("configuration required: set an API key before saving a preset")
			}
			if err := client.SaveConfig(a.store, cfg); err != nil {
				return err
			}

			a.notify.Success("Preset Applied", fmt.Sprintf("%s:%s", cfg.SMTP.Host, cfg.SMTP.Port))
			if hint != "" {
				a.notify.Info(args[0]+" Selected", hint)
			}
			return nil
		}),
	}
}
