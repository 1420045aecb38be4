package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/creativesync/internal/dashboard"
	"github.com/sells-group/creativesync/internal/export"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print a snapshot of the live performance dashboard",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		state, err := liveDashboard(ctx, env)
		if err != nil {
			return err
		}
		ticks, _ := cmd.Flags().GetInt("ticks")
		for range ticks {
			state = dashboard.Reduce(state, dashboard.Tick{Now: time.Now(), Rand: env.Rand})
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(os.Stdout, state)
		}
		formatDashboard(os.Stdout, state)
		return nil
	},
}

// formatDashboard writes the counters, the last hours of traffic and the
// activity feed.
func formatDashboard(w io.Writer, s dashboard.State) {
	fmt.Fprintf(w, "Impressions: %s   Clicks: %s   CTR: %s   Active campaigns: %d\n\n",
		export.Number(s.Metrics.Impressions), export.Number(s.Metrics.Clicks),
		export.Percent(s.Metrics.CTR), s.Metrics.ActiveCampaigns)

	imps := dashboard.Recent(s.HourlyImpressions, 6)
	clicks := dashboard.Recent(s.HourlyClicks, 6)
	fmt.Fprintln(w, "HOUR    IMPRESSIONS  CLICKS")
	for i := range imps {
		fmt.Fprintf(w, "%-6s  %11.0f  %6.0f\n", imps[i].Time, imps[i].Value, clicks[i].Value)
	}

	if len(s.Activity) > 0 {
		fmt.Fprintln(w, "\nRecent activity")
		for _, a := range s.Activity {
			fmt.Fprintf(w, "%s %s: %s (%s)\n", a.Icon, a.Title, a.Description, a.At.Format("15:04"))
		}
	}
}

func init() {
	dashboardCmd.Flags().Int("ticks", 1, "simulation steps to advance before printing")
	dashboardCmd.Flags().Bool("json", false, "print as JSON")
	rootCmd.AddCommand(dashboardCmd)
}
