package main

import (
	"github.com/spf13/cobra"

	"github.com/tonimelisma/dropbox-uploader/internal/upload"
)

func newPutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put <local_path>",
		Short: "Publish a file into the default Dropbox folder",
		Long: `Publish a local file into the configured default folder under its own base
name, replacing any file of that name. The folder comes from default_folder,
$DROPBOX_UPLOADER_FOLDER or --folder.`,
		Args: cobra.ExactArgs(1),
		RunE: runPut,
	}

	cmd.Flags().String("folder", "", "remote folder (overrides default_folder)")

	return cmd
}

func runPut(cmd *cobra.Command, args []string) error {
	logger := buildLogger()

	o := upload.NewOrchestrator(upload.Settings{
		Credentials:   resolvedCfg.Credentials(),
		Folder:        resolvedCfg.DefaultFolder,
		Endpoints:     resolvedCfg.Endpoints(),
		VerifyContent: !resolvedCfg.DisableUploadValidation,
	}, httpClient(), logger)

	res, err := o.Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	statusf("Published %s (%s)\n", res.Path, formatSize(res.Size))

	return printResult(cmd.OutOrStdout(), res)
}
