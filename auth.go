package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/dropbox-uploader/internal/dropbox"
	"github.com/tonimelisma/dropbox-uploader/internal/upload"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Check the credentials and display the Dropbox account",
		Args:  cobra.NoArgs,
		RunE:  runWhoami,
	}
}

// whoamiOutput is the JSON schema for `whoami --json`.
type whoamiOutput struct {
	AccountID   string `json:"account_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Country     string `json:"country,omitempty"`
	QuotaUsed   int64  `json:"quota_used"`
	QuotaTotal  int64  `json:"quota_total"`
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := buildLogger()
	hc := httpClient()

	token, err := upload.AccessToken(ctx, hc, resolvedCfg.Endpoints(), resolvedCfg.Credentials(), logger)
	if err != nil {
		return err
	}

	client := dropbox.NewClient(resolvedCfg.Endpoints(), hc, dropbox.StaticToken(token), logger)

	acct, err := client.CurrentAccount(ctx)
	if err != nil {
		return fmt.Errorf("fetching account: %w", err)
	}

	usage, err := client.SpaceUsage(ctx)
	if err != nil {
		return fmt.Errorf("fetching space usage: %w", err)
	}

	out := whoamiOutput{
		AccountID:   acct.AccountID,
		DisplayName: acct.DisplayName,
		Email:       acct.Email,
		Country:     acct.Country,
		QuotaUsed:   usage.Used,
		QuotaTotal:  usage.Allocated,
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s <%s>\n", out.DisplayName, out.Email)

	if out.QuotaTotal > 0 {
		fmt.Fprintf(w, "Used %s of %s\n", formatSize(out.QuotaUsed), formatSize(out.QuotaTotal))
	} else {
		fmt.Fprintf(w, "Used %s\n", formatSize(out.QuotaUsed))
	}

	return nil
}
