package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/creativesync/internal/dashboard"
	"github.com/sells-group/creativesync/internal/export"
	"github.com/sells-group/creativesync/internal/generate"
	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/store"
)

var (
	generateBrief  briefFlags
	generateSave   bool
	generateJSON   bool
	generateExport bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate campaign copy from a brief",
	Long:  "Generates ad copy for the brief with the configured provider (template copy when none is available) and forecasts its performance.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		b, err := generateBrief.brief()
		if err != nil {
			return err
		}

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		creative, err := env.Gen.Campaign(ctx, b)
		if err != nil {
			return err
		}

		if generateSave {
			c := creative.Campaign(model.CampaignStatusActive, dashboard.Simulate(env.Rand))
			if err := env.Store.SaveCampaign(ctx, &c); err != nil {
				return eris.Wrap(err, "generate: save campaign")
			}
			zap.L().Info("campaign saved", zap.String("id", c.ID), zap.String("name", c.Name))
		}

		if generateExport {
			path := export.Filename(creative.Name, export.FormatJSON, time.Now())
			if err := writeCampaignFile(path, creative); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Exported %s\n", path)
		}

		if generateJSON {
			return printJSON(os.Stdout, creative)
		}

		theme, _ := env.Store.GetSetting(ctx, store.SettingTheme)
		formatCreative(os.Stdout, creative, theme)
		return nil
	},
}

func formatCreative(w io.Writer, c *generate.Creative, theme string) {
	fmt.Fprintf(w, "%s  [%s]\n", c.Name, c.Source)
	printCopy(w, c.Content, theme)
	fmt.Fprintln(w)
	formatPrediction(w, c.Prediction)
}

func writeCampaignFile(path string, c *generate.Creative) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "create export file")
	}
	defer f.Close() //nolint:errcheck

	campaign := c.Campaign(model.CampaignStatusDraft, model.Metrics{})
	return export.CampaignJSON(f, campaign, time.Now())
}

func init() {
	generateBrief.bind(generateCmd)
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "save the campaign to history with simulated metrics")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "print the campaign as JSON")
	generateCmd.Flags().BoolVar(&generateExport, "export", false, "write the campaign to a timestamped JSON file")
	rootCmd.AddCommand(generateCmd)
}
