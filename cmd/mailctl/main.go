package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiX07/email-service/internal/client"
	mailgateway "github.com/shashiX07/email-service/sdk/go"
)

var (
	storeKind string
	storeDir  string
)

// app carries what every command needs once flags are parsed
type app struct {
	store  client.Store
	notify *client.Notifier
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mailctl",
		Short:         "Configure the email gateway client and send single or bulk emails",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&storeKind, "store", "file", `where settings are kept: "file" or "keyring"`)
	cmd.PersistentFlags().StringVar(&storeDir, "dir", "", "settings directory for the file store (default: user config dir)")

	cmd.AddCommand(
		newConfigCmd(),
		newSignatureCmd(),
		newHealthCmd(),
		newTestSMTPCmd(),
		newSendCmd(),
		newBulkCmd(),
	)
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		client.NewNotifier(os.Stderr).Error("Error", err.Error())
		os.Exit(1)
	}
}

func newApp(cmd *cobra.Command) (*app, error) {
	kind := storeKind
	if !cmd.Flags().Changed("store") {
		if env := os.Getenv("MAILCTL_STORE"); env != "" {
			kind = env
		}
	}

	var store client.Store
	switch kind {
	case "keyring":
		store = client.NewKeyringStore()
	case "file":
		dir := storeDir
		if dir == "" {
			var err error
			if dir, err = client.DefaultDir(); err != nil {
				return nil, err
			}
		}
		store = client.NewFileStore(dir)
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}

	return &app{store: store, notify: client.NewNotifier(cmd.OutOrStdout())}, nil
}

// gateway returns an SDK client for the saved configuration. Sends require
// a saved API key.
func (a *app) gateway() (*mailgateway.Client, *client.Config, error) {
	cfg, err := client.LoadConfig(a.store)
	if err != nil {
		return nil, nil, err
	}
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("configuration required: run 'mailctl config set --api-key ...' first")
	}
	return mailgateway.NewClient(mailgateway.Config{
		BaseURL: cfg.APIEndpoint,
		APIKey:  cfg.APIKey,
	}), cfg, nil
}

// runE adapts a command body that needs the app
func runE(fn func(a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return fn(a, cmd, args)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.RFC1123)
}
