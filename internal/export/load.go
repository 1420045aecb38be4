package export

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/creativesync/internal/dashboard"
	"github.com/sells-group/creativesync/internal/store"
)

// maxReportCampaigns bounds the history pulled into one report.
const maxReportCampaigns = 10000

// Load assembles a report from the saved history and profile.
func Load(ctx context.Context, st store.Store, metrics dashboard.Counters, now time.Time) (Report, error) {
	campaigns, err := st.ListCampaigns(ctx, store.CampaignFilter{Limit: maxReportCampaigns})
	if err != nil {
		return Report{}, eris.Wrap(err, "export: load campaigns")
	}
	profile, err := st.GetProfile(ctx)
	if err != nil {
		return Report{}, eris.Wrap(err, "export: load profile")
	}
	return Report{
		Campaigns:   campaigns,
		Metrics:     metrics,
		Profile:     *profile,
		GeneratedAt: now,
	}, nil
}
