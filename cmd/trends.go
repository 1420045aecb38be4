package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/creativesync/internal/dashboard"
	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/store"
	"github.com/sells-group/creativesync/internal/trends"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Browse detected shopping trends",
}

var trendsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trending moments and their scores",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ts, err := trends.List(time.Now())
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(os.Stdout, ts)
		}
		formatTrendsList(os.Stdout, ts)
		return nil
	},
}

var (
	trendsApplyBrief    briefFlags
	trendsApplyGenerate bool
	trendsApplySave     bool
)

var trendsApplyCmd = &cobra.Command{
	Use:   "apply <trend-title>",
	Short: "Preset a campaign brief from a trend",
	Long:  "Overlays the trend's preset on the brief flags and prints the result, or generates the campaign with --generate.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		base, err := trendsApplyBrief.brief()
		if err != nil {
			return err
		}
		b, err := trends.Apply(args[0], base)
		if err != nil {
			return err
		}
		if !trendsApplyGenerate {
			return printJSON(os.Stdout, b)
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
		if trendsApplySave {
			c := creative.Campaign(model.CampaignStatusActive, dashboard.Simulate(env.Rand))
			if err := env.Store.SaveCampaign(ctx, &c); err != nil {
				return err
			}
		}
		theme, _ := env.Store.GetSetting(ctx, store.SettingTheme)
		formatCreative(os.Stdout, creative, theme)
		return nil
	},
}

// formatTrendsList writes a table of trends.
func formatTrendsList(w io.Writer, ts []model.Trend) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TREND\tBADGE\tSCORE\tGROWTH\tAUDIENCE")
	for _, t := range ts {
		fmt.Fprintf(tw, "%s %s\t%s\t%d\t%s\t%s\n", t.Icon, t.Title, t.Badge, t.Score, t.Growth, t.Audience)
	}
	_ = tw.Flush()
}

func init() {
	trendsListCmd.Flags().Bool("json", false, "print as JSON")

	trendsApplyBrief.bind(trendsApplyCmd)
	trendsApplyCmd.Flags().BoolVar(&trendsApplyGenerate, "generate", false, "generate the campaign after applying the preset")
	trendsApplyCmd.Flags().BoolVar(&trendsApplySave, "save", false, "with --generate, save the campaign to history")

	trendsCmd.AddCommand(trendsListCmd, trendsApplyCmd)
	rootCmd.AddCommand(trendsCmd)
}
