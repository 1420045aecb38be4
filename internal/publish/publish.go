// Package publish mirrors saved campaigns into a Notion database.
package publish

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/pkg/notion"
)

// Notion database property names.
const (
	PropName       = "Name"
	PropCampaignID = "Campaign ID"
	PropStatus     = "Status"
	PropCTR        = "CTR"
	PropReach      = "Reach"
	PropEngagement = "Engagement"
	PropPlatform   = "Platform"
	PropAudience   = "Audience"
	PropCreated    = "Created"
)

// Result counts the pages written by a Publish call.
type Result struct {
	Created int
	Updated int
}

// Total is the number of campaigns written.
func (r Result) Total() int { return r.Created + r.Updated }

// Publisher writes campaigns as pages of one Notion database. A campaign that
// was published before is updated in place, matched on its Campaign ID.
type Publisher struct {
	client notion.Client
	dbID   string
}

// New returns a Publisher for database dbID.
func New(client notion.Client, dbID string) *Publisher {
	return &Publisher{client: client, dbID: dbID}
}

// Publish writes every campaign and returns the number of pages written.
// It stops at the first failed page; campaigns written before it still count.
func (p *Publisher) Publish(ctx context.Context, campaigns []model.Campaign) (int, error) {
	res, err := p.Sync(ctx, campaigns)
	return res.Total(), err
}

// Sync is Publish with created and updated pages counted apart.
func (p *Publisher) Sync(ctx context.Context, campaigns []model.Campaign) (Result, error) {
	var res Result
	if len(campaigns) == 0 {
		return res, nil
	}

	existing, err := notion.QueryAll(ctx, p.client, p.dbID, nil)
	if err != nil {
		return res, eris.Wrap(err, "publish: list existing pages")
	}
	pages := notion.IndexByText(existing, PropCampaignID)

	log := zap.L().With(zap.String("database", p.dbID))
	for _, c := range campaigns {
		props := Properties(c)
		if pageID, ok := pages[c.ID]; ok {
			if _, err := p.client.UpdatePage(ctx, string(pageID), &notionapi.PageUpdateRequest{Properties: props}); err != nil {
				return res, eris.Wrap(err, fmt.Sprintf("publish: update campaign %s", c.ID))
			}
			res.Updated++
			log.Debug("publish: updated page", zap.String("campaign_id", c.ID), zap.String("page_id", string(pageID)))
			continue
		}

		page, err := p.client.CreatePage(ctx, &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: notionapi.DatabaseID(p.dbID),
			},
			Properties: props,
		})
		if err != nil {
			return res, eris.Wrap(err, fmt.Sprintf("publish: create campaign %s", c.ID))
		}
		res.Created++
		log.Debug("publish: created page", zap.String("campaign_id", c.ID), zap.String("page_id", string(page.ID)))
	}

	log.Info("publish: complete", zap.Int("created", res.Created), zap.Int("updated", res.Updated))
	return res, nil
}

// Properties maps a campaign onto the database columns.
func Properties(c model.Campaign) notionapi.Properties {
	return notionapi.Properties{
		PropName:       notion.Title(c.Name),
		PropCampaignID: notion.RichText(c.ID),
		PropStatus:     notion.Select(string(c.Status)),
		PropCTR:        notion.Number(c.Prediction.CTR),
		PropReach:      notion.Number(float64(c.Prediction.Reach)),
		PropEngagement: notion.Number(float64(c.Prediction.Engagement)),
		PropPlatform:   notion.RichText(c.Brief.Platform.String()),
		PropAudience:   notion.RichText(c.Brief.Audience.String()),
		PropCreated:    notion.Date(c.CreatedAt),
	}
}
