package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/publish"
	"github.com/sells-group/creativesync/internal/store"
	"github.com/sells-group/creativesync/pkg/notion"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Mirror saved campaigns into a Notion database",
	Long:  "Creates one Notion page per campaign, or updates the page a campaign was published to before.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "publish")
		if err != nil {
			return err
		}
		defer env.Close()

		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		campaigns, err := env.Store.ListCampaigns(ctx, store.CampaignFilter{
			Status: model.CampaignStatus(status),
			Limit:  limit,
		})
		if err != nil {
			return eris.Wrap(err, "publish: list campaigns")
		}
		if len(campaigns) == 0 {
			fmt.Fprintln(os.Stderr, "No campaigns to publish.")
			return nil
		}

		client := notion.NewClient(cfg.Notion.Token)
		res, err := publish.New(client, cfg.Notion.CampaignDB).Sync(ctx, campaigns)
		fmt.Fprintf(os.Stdout, "Published %d campaigns (%d created, %d updated)\n", res.Total(), res.Created, res.Updated)
		return err
	},
}

func init() {
	publishCmd.Flags().String("status", "", "only publish campaigns with this status")
	publishCmd.Flags().Int("limit", 100, "max number of campaigns to publish")
	rootCmd.AddCommand(publishCmd)
}
