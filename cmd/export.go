package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/creativesync/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export campaign history and analytics",
	Long:  "Writes the saved campaigns, dashboard counters and profile as json, csv, txt, html or xlsx.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		f, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		state, err := liveDashboard(ctx, env)
		if err != nil {
			return err
		}
		now := time.Now()
		report, err := export.Load(ctx, env.Store, state.Metrics, now)
		if err != nil {
			return err
		}

		path := exportOut
		if path == "" {
			path = export.Filename(export.ReportName(f), f, now)
		}
		if path == "-" {
			return export.Write(os.Stdout, f, report)
		}

		out, err := os.Create(path)
		if err != nil {
			return eris.Wrap(err, "export: create file")
		}
		if err := export.Write(out, f, report); err != nil {
			_ = out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return eris.Wrap(err, "export: close file")
		}

		fmt.Fprintf(os.Stderr, "Exported %d campaigns to %s\n", len(report.Campaigns), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "json, csv, txt, html or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (\"-\" for stdout, default: timestamped file)")
	rootCmd.AddCommand(exportCmd)
}
