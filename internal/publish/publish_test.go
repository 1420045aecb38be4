package publish

import (
	"context"
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/pkg/notion"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	args := m.Called(ctx, dbID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notionapi.DatabaseQueryResponse), args.Error(1)
}

func (m *mockClient) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notionapi.Page), args.Error(1)
}

func (m *mockClient) UpdatePage(ctx context.Context, pageID string, req *notionapi.PageUpdateRequest) (*notionapi.Page, error) {
	args := m.Called(ctx, pageID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notionapi.Page), args.Error(1)
}

var created = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func campaign(id, name string) model.Campaign {
	return model.Campaign{
		ID:     id,
		Name:   name,
		Status: model.CampaignStatusActive,
		Brief: model.Brief{
			Audience: model.AudienceClubcardMembers,
			Platform: model.PlatformSocialMedia,
		},
		Prediction: model.Prediction{CTR: 7.4, Reach: 150000, Engagement: 88, Confidence: 91},
		CreatedAt:  created,
	}
}

func existingPages(pages ...notionapi.Page) *notionapi.DatabaseQueryResponse {
	return &notionapi.DatabaseQueryResponse{Results: pages}
}

func TestProperties(t *testing.T) {
	props := Properties(campaign("c-1", "Summer Sale"))

	assert.Equal(t, "Summer Sale", notion.PlainText(props[PropName]))
	assert.Equal(t, "c-1", notion.PlainText(props[PropCampaignID]))
	assert.Equal(t, "Social Media", notion.PlainText(props[PropPlatform]))
	assert.Equal(t, "Clubcard Members", notion.PlainText(props[PropAudience]))
	assert.Equal(t, "Active", props[PropStatus].(notionapi.SelectProperty).Select.Name)
	assert.Equal(t, 7.4, props[PropCTR].(notionapi.NumberProperty).Number)
	assert.Equal(t, float64(150000), props[PropReach].(notionapi.NumberProperty).Number)
	assert.Equal(t, float64(88), props[PropEngagement].(notionapi.NumberProperty).Number)

	date := props[PropCreated].(notionapi.DateProperty)
	require.NotNil(t, date.Date.Start)
	assert.Equal(t, created, time.Time(*date.Date.Start))
}

func TestPublish_CreatesNewPages(t *testing.T) {
	mc := new(mockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "db-1", mock.Anything).Return(existingPages(), nil).Once()
	mc.On("CreatePage", ctx, mock.MatchedBy(func(req *notionapi.PageCreateRequest) bool {
		return req.Parent.DatabaseID == "db-1" && notion.PlainText(req.Properties[PropName]) == "Summer Sale"
	})).Return(&notionapi.Page{ID: "page-a"}, nil).Once()
	mc.On("CreatePage", ctx, mock.MatchedBy(func(req *notionapi.PageCreateRequest) bool {
		return notion.PlainText(req.Properties[PropName]) == "Winter Warmers"
	})).Return(&notionapi.Page{ID: "page-b"}, nil).Once()

	p := New(mc, "db-1")
	n, err := p.Publish(ctx, []model.Campaign{campaign("c-1", "Summer Sale"), campaign("c-2", "Winter Warmers")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	mc.AssertExpectations(t)
}

func TestSync_UpdatesPublishedCampaigns(t *testing.T) {
	mc := new(mockClient)
	ctx := context.Background()

	published := notionapi.Page{ID: "page-old", Properties: notionapi.Properties{
		PropCampaignID: &notionapi.RichTextProperty{RichText: []notionapi.RichText{{PlainText: "c-1"}}},
	}}
	mc.On("QueryDatabase", ctx, "db-1", mock.Anything).Return(existingPages(published), nil).Once()
	mc.On("UpdatePage", ctx, "page-old", mock.AnythingOfType("*notionapi.PageUpdateRequest")).
		Return(&notionapi.Page{ID: "page-old"}, nil).Once()
	mc.On("CreatePage", ctx, mock.AnythingOfType("*notionapi.PageCreateRequest")).
		Return(&notionapi.Page{ID: "page-new"}, nil).Once()

	res, err := New(mc, "db-1").Sync(ctx, []model.Campaign{campaign("c-1", "Summer Sale"), campaign("c-2", "Autumn")})
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 1, Updated: 1}, res)
	mc.AssertExpectations(t)
}

func TestPublish_Empty(t *testing.T) {
	mc := new(mockClient)
	n, err := New(mc, "db-1").Publish(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	mc.AssertNotCalled(t, "QueryDatabase", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublish_QueryError(t *testing.T) {
	mc := new(mockClient)
	ctx := context.Background()
	mc.On("QueryDatabase", ctx, "db-1", mock.Anything).Return(nil, assert.AnError).Once()

	n, err := New(mc, "db-1").Publish(ctx, []model.Campaign{campaign("c-1", "Summer Sale")})
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "publish: list existing pages")
}

func TestPublish_StopsAtFirstFailure(t *testing.T) {
	mc := new(mockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "db-1", mock.Anything).Return(existingPages(), nil).Once()
	mc.On("CreatePage", ctx, mock.MatchedBy(func(req *notionapi.PageCreateRequest) bool {
		return notion.PlainText(req.Properties[PropCampaignID]) == "c-1"
	})).Return(&notionapi.Page{ID: "page-a"}, nil).Once()
	mc.On("CreatePage", ctx, mock.MatchedBy(func(req *notionapi.PageCreateRequest) bool {
		return notion.PlainText(req.Properties[PropCampaignID]) == "c-2"
	})).Return(nil, assert.AnError).Once()

	n, err := New(mc, "db-1").Publish(ctx, []model.Campaign{
		campaign("c-1", "One"), campaign("c-2", "Two"), campaign("c-3", "Three"),
	})
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, err.Error(), "publish: create campaign c-2")
	mc.AssertExpectations(t)
}
