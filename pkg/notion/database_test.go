package notion

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestQueryAll_SinglePage(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "db-1", mock.AnythingOfType("*notionapi.DatabaseQueryRequest")).
		Return(&notionapi.DatabaseQueryResponse{
			Results: []notionapi.Page{{ID: "p1"}, {ID: "p2"}},
		}, nil).Once()

	pages, err := QueryAll(ctx, mc, "db-1", nil)
	require.NoError(t, err)
	assert.Len(t, pages, 2)
	mc.AssertExpectations(t)
}

func TestQueryAll_MultiPage(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "db-1", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == ""
	})).Return(&notionapi.DatabaseQueryResponse{
		Results:    []notionapi.Page{{ID: "p1"}},
		HasMore:    true,
		NextCursor: notionapi.Cursor("cursor-abc"),
	}, nil).Once()

	mc.On("QueryDatabase", ctx, "db-1", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == notionapi.Cursor("cursor-abc")
	})).Return(&notionapi.DatabaseQueryResponse{
		Results: []notionapi.Page{{ID: "p2"}},
	}, nil).Once()

	pages, err := QueryAll(ctx, mc, "db-1", nil)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, notionapi.ObjectID("p1"), pages[0].ID)
	assert.Equal(t, notionapi.ObjectID("p2"), pages[1].ID)
	mc.AssertExpectations(t)
}

func TestQueryAll_FilterCarriedToEveryPage(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	hasFilter := func(req *notionapi.DatabaseQueryRequest) bool {
		pf, ok := req.Filter.(notionapi.PropertyFilter)
		return ok && pf.Property == "Status" && pf.Select != nil && pf.Select.Equals == "Active" &&
			len(req.Sorts) == 1 && req.PageSize == 50
	}
	mc.On("QueryDatabase", ctx, "db-1", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return hasFilter(req) && req.StartCursor == ""
	})).Return(&notionapi.DatabaseQueryResponse{
		Results: []notionapi.Page{{ID: "p1"}}, HasMore: true, NextCursor: "next",
	}, nil).Once()
	mc.On("QueryDatabase", ctx, "db-1", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return hasFilter(req) && req.StartCursor == "next"
	})).Return(&notionapi.DatabaseQueryResponse{
		Results: []notionapi.Page{{ID: "p2"}},
	}, nil).Once()

	filter := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Status",
			Select:   &notionapi.SelectFilterCondition{Equals: "Active"},
		},
		Sorts:    []notionapi.SortObject{{Property: "Created", Direction: notionapi.SortOrderDESC}},
		PageSize: 50,
	}
	pages, err := QueryAll(ctx, mc, "db-1", filter)
	require.NoError(t, err)
	assert.Len(t, pages, 2)
	mc.AssertExpectations(t)
}

func TestQueryAll_Error(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "db-1", mock.AnythingOfType("*notionapi.DatabaseQueryRequest")).
		Return(nil, assert.AnError).Once()

	pages, err := QueryAll(ctx, mc, "db-1", nil)
	require.Error(t, err)
	assert.Nil(t, pages)
	assert.Contains(t, err.Error(), "notion: query all")
	mc.AssertExpectations(t)
}

func TestQueryAll_ContextCancelled(t *testing.T) {
	mc := new(MockClient)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pages, err := QueryAll(ctx, mc, "db-1", nil)
	assert.Error(t, err)
	assert.Nil(t, pages)
	mc.AssertNotCalled(t, "QueryDatabase", mock.Anything, mock.Anything, mock.Anything)
}

func TestIndexByText(t *testing.T) {
	pages := []notionapi.Page{
		{ID: "p1", Properties: notionapi.Properties{"Campaign ID": &notionapi.RichTextProperty{
			RichText: []notionapi.RichText{{PlainText: "c-1"}},
		}}},
		{ID: "p2", Properties: notionapi.Properties{"Campaign ID": &notionapi.RichTextProperty{}}},
		{ID: "p3", Properties: notionapi.Properties{}},
		{ID: "p4", Properties: notionapi.Properties{"Campaign ID": &notionapi.RichTextProperty{
			RichText: []notionapi.RichText{{PlainText: "c-1"}},
		}}},
		{ID: "p5", Properties: notionapi.Properties{"Campaign ID": RichText("c-2")}},
	}

	idx := IndexByText(pages, "Campaign ID")
	assert.Equal(t, map[string]notionapi.ObjectID{"c-1": "p1", "c-2": "p5"}, idx)
}

func TestPlainText(t *testing.T) {
	title := &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: "Summer "}, {PlainText: "Sale"}}}
	assert.Equal(t, "Summer Sale", PlainText(title))
	assert.Equal(t, "Winter", PlainText(Title("  Winter ")))
	assert.Empty(t, PlainText(Number(4.2)))
	assert.Empty(t, PlainText(nil))
}

func TestPropertyBuilders(t *testing.T) {
	when := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, notionapi.PropertyTypeNumber, Number(7.42).Type)
	assert.Equal(t, 7.42, Number(7.42).Number)
	assert.Equal(t, "Active", Select("Active").Select.Name)

	d := Date(when)
	require.NotNil(t, d.Date.Start)
	assert.Equal(t, when, time.Time(*d.Date.Start))

	long := strings.Repeat("é", maxTextRun+10)
	rt := RichText(long)
	require.Len(t, rt.RichText, 2)
	assert.Len(t, []rune(rt.RichText[0].Text.Content), maxTextRun)
	assert.Len(t, []rune(rt.RichText[1].Text.Content), 10)

	assert.Len(t, Title("").Title, 1)
}
