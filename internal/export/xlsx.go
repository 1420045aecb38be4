package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Sheet names in the analytics workbook.
const (
	SheetSummary   = "Summary"
	SheetCampaigns = "Campaigns"
)

// Workbook writes the analytics report as an XLSX file with a summary sheet
// and one row per campaign.
func Workbook(w io.Writer, r Report) error {
	f := xlsx.NewFile()

	summary, err := f.AddSheet(SheetSummary)
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}
	s := r.Summary()
	addStringRow(summary, "Metric", "Value")
	addStringRow(summary, "Generated By", r.Profile.DisplayName())
	addStringRow(summary, "Company", orDefault(r.Profile.Company, "N/A"))
	addStringRow(summary, "Date", r.GeneratedAt.Format(dateLayout))
	addIntRow(summary, "Total Campaigns", s.TotalCampaigns)
	addIntRow(summary, "Active Campaigns", s.ActiveCampaigns)
	addIntRow(summary, "Total Impressions", r.Metrics.Impressions)
	addIntRow(summary, "Total Clicks", r.Metrics.Clicks)
	row := summary.AddRow()
	row.AddCell().SetString("Average CTR")
	row.AddCell().SetFloat(r.Metrics.CTR)

	campaigns, err := f.AddSheet(SheetCampaigns)
	if err != nil {
		return eris.Wrap(err, "export: add campaigns sheet")
	}
	addStringRow(campaigns, csvHeader...)
	for _, c := range r.Campaigns {
		row := campaigns.AddRow()
		row.AddCell().SetString(c.Name)
		row.AddCell().SetString(c.CreatedAt.Format("2006-01-02"))
		row.AddCell().SetString(string(c.Status))
		row.AddCell().SetInt(c.Metrics.Impressions)
		row.AddCell().SetInt(c.Metrics.Clicks)
		row.AddCell().SetFloat(c.Metrics.CTR)
		row.AddCell().SetInt(c.Metrics.Engagement)
		row.AddCell().SetInt(c.Metrics.Reach)
	}

	return eris.Wrap(f.Write(w), "export: write xlsx")
}

func addStringRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func addIntRow(sheet *xlsx.Sheet, label string, v int) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetInt(v)
}
