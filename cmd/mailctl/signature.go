package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiX07/email-service/internal/client"
)

func newSignatureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signature",
		Short: "Manage the reusable email signature",
	}
	cmd.AddCommand(newSignatureShowCmd(), newSignatureSetCmd(), newSignatureClearCmd(), newSignaturePreviewCmd())
	return cmd
}

func newSignatureShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved signature fields",
		RunE: runE(func(a *app, cmd *cobra.Command, args []string) error {
			sig, err := client.LoadSignature(a.store)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sig)
		}),
	}
}

func newSignatureSetCmd() *cobra.Command {
	var sig client.Signature

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the saved signature",
		RunE: runE(func(a *app, cmd *cobra.Command, args []string) error {
			if err := client.SaveSignature(a.store, sig); err != nil {
				return err
			}
			a.notify.Success("Signature Saved!", "Your email signature has been saved")
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&sig.Name, "name", "", "full name")
	f.StringVar(&sig.Title, "title", "", "job title")
	f.StringVar(&sig.Company, "company", "", "company")
	f.StringVar(&sig.Email, "email", "", "contact address")
	f.StringVar(&sig.Phone, "phone", "", "phone number")
	f.StringVar(&sig.Website, "website", "", "website URL")
	f.StringVar(&sig.Custom, "custom", "", "custom HTML that replaces all other fields")
	return cmd
}

func newSignatureClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved signature",
		RunE: runE(func(a *app, cmd *cobra.Command, args []string) error {
			if err := client.ClearSignature(a.store); err != nil {
				return err
			}
			a.notify.Info("Signature Cleared", "Your signature has been cleared")
			return nil
		}),
	}
}

func newSignaturePreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Print the rendered signature HTML",
		RunE: runE(func(a *app, cmd *cobra.Command, args []string) error {
			sig, err := client.LoadSignature(a.store)
			if err != nil {
				return err
			}
			html := sig.HTML()
			if html == "" {
				a.notify.Warning("No Signature", "Please add signature details first")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		}),
	}
}
