package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/creativesync/internal/dashboard"
	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/render"
)

const (
	reportTitle  = "CreativeSync AI - Analytics Report"
	reportFooter = "Generated by CreativeSync AI"
	dateLayout   = "02 Jan 2006, 15:04"

	// NoCampaigns is written instead of a CSV table when there is nothing to export.
	NoCampaigns = "No campaigns to export"
)

var csvHeader = []string{
	"Campaign Name", "Created Date", "Status", "Impressions", "Clicks", "CTR (%)", "Engagement", "Reach",
}

type campaignExport struct {
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Metadata    model.Brief      `json:"metadata"`
	Predictions model.Prediction `json:"predictions"`
	Exported    time.Time        `json:"exported"`
}

// CampaignJSON writes a single campaign with its forecast.
func CampaignJSON(w io.Writer, c model.Campaign, now time.Time) error {
	return writeJSON(w, campaignExport{
		Title:       c.Name,
		Content:     c.Content,
		Metadata:    c.Brief,
		Predictions: c.Prediction,
		Exported:    now.UTC(),
	})
}

// AnalyticsJSON writes every campaign, the live metrics and the summary.
func AnalyticsJSON(w io.Writer, r Report) error {
	campaigns := r.Campaigns
	if campaigns == nil {
		campaigns = []model.Campaign{}
	}
	return writeJSON(w, struct {
		Campaigns []model.Campaign   `json:"campaigns"`
		Metrics   dashboard.Counters `json:"metrics"`
		Summary   Summary            `json:"summary"`
		Exported  time.Time          `json:"exported"`
	}{
		Campaigns: campaigns,
		Metrics:   r.Metrics,
		Summary:   r.Summary(),
		Exported:  r.GeneratedAt.UTC(),
	})
}

// CampaignsCSV writes one row per campaign under a header row.
func CampaignsCSV(w io.Writer, campaigns []model.Campaign) error {
	if len(campaigns) == 0 {
		_, err := io.WriteString(w, NoCampaigns)
		return eris.Wrap(err, "export: write csv")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, c := range campaigns {
		if err := cw.Write(campaignRow(c)); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

func campaignRow(c model.Campaign) []string {
	engagement, reach := "N/A", "N/A"
	if c.Metrics.Engagement > 0 {
		engagement = strconv.Itoa(c.Metrics.Engagement)
	}
	if c.Metrics.Reach > 0 {
		reach = strconv.Itoa(c.Metrics.Reach)
	}
	return []string{
		c.Name,
		c.CreatedAt.Format("2006-01-02"),
		string(c.Status),
		strconv.Itoa(c.Metrics.Impressions),
		strconv.Itoa(c.Metrics.Clicks),
		strconv.FormatFloat(c.Metrics.CTR, 'f', 2, 64),
		engagement,
		reach,
	}
}

// TextReport writes the plain-text analytics report.
func TextReport(w io.Writer, r Report) error {
	s := r.Summary()
	var b strings.Builder

	b.WriteString("CREATIVESYNC AI - ANALYTICS REPORT\n")
	b.WriteString("==================================\n\n")
	fmt.Fprintf(&b, "Generated By: %s\n", r.Profile.DisplayName())
	fmt.Fprintf(&b, "Company: %s\n", orDefault(r.Profile.Company, "N/A"))
	fmt.Fprintf(&b, "Email: %s\n", orDefault(r.Profile.Email, "N/A"))
	fmt.Fprintf(&b, "Date: %s\n\n", r.GeneratedAt.Format(dateLayout))

	b.WriteString("PERFORMANCE OVERVIEW\n")
	b.WriteString("--------------------\n")
	fmt.Fprintf(&b, "Total Campaigns: %d\n", s.TotalCampaigns)
	fmt.Fprintf(&b, "Active Campaigns: %d\n", s.ActiveCampaigns)
	fmt.Fprintf(&b, "Total Impressions: %s\n", Number(r.Metrics.Impressions))
	fmt.Fprintf(&b, "Total Clicks: %s\n", Number(r.Metrics.Clicks))
	fmt.Fprintf(&b, "Average CTR: %s\n\n", Percent(r.Metrics.CTR))

	b.WriteString("CAMPAIGN DETAILS\n")
	b.WriteString("----------------\n")
	for _, c := range r.Campaigns {
		fmt.Fprintf(&b, "Campaign: %s\n", c.Name)
		fmt.Fprintf(&b, "Status: %s\n", c.Status)
		fmt.Fprintf(&b, "Impressions: %s\n", Number(c.Metrics.Impressions))
		fmt.Fprintf(&b, "Clicks: %s\n", Number(c.Metrics.Clicks))
		fmt.Fprintf(&b, "CTR: %s\n", Percent(c.Metrics.CTR))
		b.WriteString("---\n")
	}
	b.WriteString("\n" + reportFooter + "\n")

	_, err := io.WriteString(w, b.String())
	return eris.Wrap(err, "export: write text report")
}

// Markdown returns the analytics report as GitHub-flavored Markdown.
func Markdown(r Report) string {
	s := r.Summary()
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", reportTitle)
	fmt.Fprintf(&b, "**Generated By:** %s  \n", r.Profile.DisplayName())
	fmt.Fprintf(&b, "**Company:** %s  \n", orDefault(r.Profile.Company, "N/A"))
	fmt.Fprintf(&b, "**Date:** %s\n\n", r.GeneratedAt.Format(dateLayout))

	b.WriteString("## Performance Overview\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total Campaigns | %d |\n", s.TotalCampaigns)
	fmt.Fprintf(&b, "| Active Campaigns | %d |\n", s.ActiveCampaigns)
	fmt.Fprintf(&b, "| Total Impressions | %s |\n", Number(r.Metrics.Impressions))
	fmt.Fprintf(&b, "| Total Clicks | %s |\n", Number(r.Metrics.Clicks))
	fmt.Fprintf(&b, "| Average CTR | %s |\n\n", Percent(r.Metrics.CTR))

	b.WriteString("## Campaign Details\n\n")
	if len(r.Campaigns) == 0 {
		b.WriteString(NoCampaigns + "\n\n")
	} else {
		b.WriteString("| Campaign Name | Status | Impressions | Clicks | CTR |\n|---|---|---|---|---|\n")
		for _, c := range r.Campaigns {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				escapeCell(c.Name), c.Status, Number(c.Metrics.Impressions), Number(c.Metrics.Clicks), Percent(c.Metrics.CTR))
		}
		b.WriteString("\n")
	}
	b.WriteString("*" + reportFooter + "*\n")
	return b.String()
}

// HTMLReport writes a standalone HTML page of the analytics report.
func HTMLReport(w io.Writer, r Report) error {
	body := render.HTML(Markdown(r))
	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #1f2937; }
table { border-collapse: collapse; width: 100%%; margin-bottom: 1.5rem; }
th, td { border: 1px solid #e5e7eb; padding: 0.5rem; text-align: left; }
th { background: #f3f4f6; }
</style>
</head>
<body>
%s
</body>
</html>
`, reportTitle, body)
	return eris.Wrap(err, "export: write html report")
}

// Write dispatches r to the writer for f.
func Write(w io.Writer, f Format, r Report) error {
	switch f {
	case FormatJSON:
		return AnalyticsJSON(w, r)
	case FormatCSV:
		return CampaignsCSV(w, r.Campaigns)
	case FormatText:
		return TextReport(w, r)
	case FormatHTML:
		return HTMLReport(w, r)
	case FormatXLSX:
		return Workbook(w, r)
	default:
		return eris.Errorf("export: unknown format %q", f)
	}
}

// ReportName is the title used for analytics export filenames.
func ReportName(f Format) string {
	if f == FormatCSV {
		return "creativesync-campaigns"
	}
	return "creativesync-analytics"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "export: encode json")
}
