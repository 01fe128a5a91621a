package main

import (
	"github.com/spf13/cobra"

	"github.com/tonimelisma/dropbox-uploader/internal/dropbox"
	"github.com/tonimelisma/dropbox-uploader/internal/upload"
)

func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <local_path> <destination_path>",
		Short: "Upload a file to an exact Dropbox path, replacing any existing file",
		Long: `Upload a single local file to destination_path on Dropbox. A destination
without a leading "/" is treated as absolute. An existing file at the
destination is overwritten.

Without --access-token a fresh token is obtained from the configured app key,
app secret and refresh token.`,
		Args: cobra.ExactArgs(2),
		RunE: runUpload,
	}

	cmd.Flags().String("access-token", "", "Dropbox access token (default: refresh from credentials)")

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := buildLogger()
	hc := httpClient()

	token, err := cmd.Flags().GetString("access-token")
	if err != nil {
		return err
	}

	if token == "" {
		token, err = upload.AccessToken(ctx, hc, resolvedCfg.Endpoints(), resolvedCfg.Credentials(), logger)
		if err != nil {
			return err
		}
	}

	client := dropbox.NewClient(resolvedCfg.Endpoints(), hc, dropbox.StaticToken(token), logger)
	uploader := upload.NewFileUploader(client, !resolvedCfg.DisableUploadValidation, logger)

	res, err := uploader.Upload(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	statusf("Uploaded %s (%s)\n", res.Path, formatSize(res.Size))

	return printResult(cmd.OutOrStdout(), res)
}
