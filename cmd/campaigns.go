package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/creativesync/internal/fallback"
	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/store"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Browse and manage saved campaigns",
	Long:  "Commands for listing, viewing, duplicating and deleting saved campaigns.",
}

// -- campaigns list --

var campaignsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved campaigns, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		query, _ := cmd.Flags().GetString("query")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		campaigns, err := env.Store.ListCampaigns(ctx, store.CampaignFilter{
			Query:  query,
			Status: model.CampaignStatus(status),
			Limit:  limit,
		})
		if err != nil {
			return eris.Wrap(err, "campaigns list")
		}

		if asJSON {
			if campaigns == nil {
				campaigns = []model.Campaign{}
			}
			return printJSON(os.Stdout, campaigns)
		}
		if len(campaigns) == 0 {
			fmt.Fprintln(os.Stderr, "No campaigns found.")
			return nil
		}
		formatCampaignsList(os.Stdout, campaigns)
		return nil
	},
}

// -- campaigns show --

var campaignsShowCmd = &cobra.Command{
	Use:   "show <campaign-id>",
	Short: "Show a saved campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		c, err := env.Store.GetCampaign(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "campaigns show")
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(os.Stdout, c)
		}

		theme, _ := env.Store.GetSetting(ctx, store.SettingTheme)
		formatCampaignDetail(os.Stdout, c)
		printCopy(os.Stdout, c.Content, theme)
		return nil
	},
}

// -- campaigns duplicate --

var campaignsDuplicateCmd = &cobra.Command{
	Use:   "duplicate <campaign-id>",
	Short: "Copy a saved campaign with fresh delivery counters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		dup, err := env.Store.DuplicateCampaign(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "campaigns duplicate")
		}
		fmt.Fprintf(os.Stdout, "Created %s (%s)\n", dup.Name, dup.ID)
		return nil
	},
}

// -- campaigns delete --

var campaignsDeleteCmd = &cobra.Command{
	Use:   "delete <campaign-id>",
	Short: "Delete a saved campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Store.DeleteCampaign(ctx, args[0]); err != nil {
			return eris.Wrap(err, "campaigns delete")
		}
		fmt.Fprintf(os.Stdout, "Deleted %s\n", args[0])
		return nil
	},
}

// formatCampaignsList writes a table of campaigns.
func formatCampaignsList(w io.Writer, campaigns []model.Campaign) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tPLATFORM\tCTR\tIMPRESSIONS\tCREATED")
	for _, c := range campaigns {
		id := c.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f%%\t%d\t%s\n",
			id,
			fallback.Truncate(c.Name, 40),
			c.Status,
			c.Brief.Platform,
			c.Metrics.CTR,
			c.Metrics.Impressions,
			c.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = tw.Flush()
}

// formatCampaignDetail writes the header block of a single campaign.
func formatCampaignDetail(w io.Writer, c *model.Campaign) {
	fmt.Fprintf(w, "%s  [%s, %s]\n", c.Name, c.Status, c.Source)
	fmt.Fprintf(w, "ID:        %s\n", c.ID)
	fmt.Fprintf(w, "Created:   %s\n", c.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Audience:  %s\n", c.Brief.Audience)
	fmt.Fprintf(w, "Platform:  %s\n", c.Brief.Platform)
	fmt.Fprintf(w, "Tone:      %s\n", c.Brief.Tone)
	if c.Brief.Trend != "" {
		fmt.Fprintf(w, "Trend:     %s\n", c.Brief.Trend)
	}
	fmt.Fprintf(w, "Delivered: %d impressions, %d clicks, %.2f%% CTR\n",
		c.Metrics.Impressions, c.Metrics.Clicks, c.Metrics.CTR)
	formatPrediction(w, c.Prediction)
	fmt.Fprintln(w)
}

func init() {
	campaignsListCmd.Flags().String("query", "", "case-insensitive search in name and content")
	campaignsListCmd.Flags().String("status", "", "filter by status (Active, Paused, Draft)")
	campaignsListCmd.Flags().Int("limit", 100, "max number of campaigns to list")
	campaignsListCmd.Flags().Bool("json", false, "print as JSON")
	campaignsShowCmd.Flags().Bool("json", false, "print as JSON")

	campaignsCmd.AddCommand(campaignsListCmd, campaignsShowCmd, campaignsDuplicateCmd, campaignsDeleteCmd)
	rootCmd.AddCommand(campaignsCmd)
}
