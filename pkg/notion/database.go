package notion

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// QueryAll fetches every page of a database query. The next page is requested
// in the background while the current one is appended.
func QueryAll(ctx context.Context, c Client, dbID string, filter *notionapi.DatabaseQueryRequest) ([]notionapi.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "notion: query all")
	}

	newRequest := func(cursor notionapi.Cursor) *notionapi.DatabaseQueryRequest {
		req := &notionapi.DatabaseQueryRequest{StartCursor: cursor}
		if filter != nil {
			req.Filter = filter.Filter
			req.Sorts = filter.Sorts
			req.PageSize = filter.PageSize
		}
		return req
	}

	type result struct {
		resp *notionapi.DatabaseQueryResponse
		err  error
	}

	var all []notionapi.Page
	var pending <-chan result
	for {
		var r result
		if pending != nil {
			r = <-pending
		} else {
			r.resp, r.err = c.QueryDatabase(ctx, dbID, newRequest(""))
		}
		if r.err != nil {
			return nil, eris.Wrap(r.err, "notion: query all")
		}

		all = append(all, r.resp.Results...)
		if !r.resp.HasMore {
			return all, nil
		}

		ch := make(chan result, 1)
		pending = ch
		next := newRequest(r.resp.NextCursor)
		go func() {
			resp, err := c.QueryDatabase(ctx, dbID, next)
			ch <- result{resp: resp, err: err}
		}()
	}
}

// IndexByText maps the plain text of a rich text or title property to the
// page holding it. Pages with an empty value are skipped; on duplicates the
// first page wins.
func IndexByText(pages []notionapi.Page, property string) map[string]notionapi.ObjectID {
	idx := make(map[string]notionapi.ObjectID, len(pages))
	for _, p := range pages {
		key := PlainText(p.Properties[property])
		if key == "" {
			continue
		}
		if _, ok := idx[key]; !ok {
			idx[key] = p.ID
		}
	}
	return idx
}

// PlainText flattens a title or rich text property. Other property types
// yield "".
func PlainText(prop notionapi.Property) string {
	var parts []notionapi.RichText
	switch p := prop.(type) {
	case *notionapi.TitleProperty:
		parts = p.Title
	case notionapi.TitleProperty:
		parts = p.Title
	case *notionapi.RichTextProperty:
		parts = p.RichText
	case notionapi.RichTextProperty:
		parts = p.RichText
	}

	var b strings.Builder
	for _, rt := range parts {
		if rt.PlainText != "" {
			b.WriteString(rt.PlainText)
		} else if rt.Text != nil {
			b.WriteString(rt.Text.Content)
		}
	}
	return strings.TrimSpace(b.String())
}
