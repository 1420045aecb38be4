// Package export writes campaigns, analytics reports and variant summaries
// as downloadable files.
package export

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/creativesync/internal/dashboard"
	"github.com/sells-group/creativesync/internal/model"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatText, FormatHTML, FormatXLSX}
}

// ParseFormat maps a file extension to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", eris.Errorf("export: unknown format %q", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}

var printer = message.NewPrinter(language.English)

// Number formats n with thousands separators.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// Percent formats v with two decimals and a percent sign.
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug lowercases title and joins its words with hyphens. Accents are
// dropped and anything that is not a letter or digit separates words.
func Slug(title string) string {
	plain, _, err := transform.String(stripMarks, title)
	if err != nil {
		plain = title
	}
	words := strings.FieldsFunc(strings.ToLower(plain), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return "creativesync"
	}
	return strings.Join(words, "-")
}

// Filename returns "{slug}-{unix millis}.{ext}".
func Filename(title string, f Format, now time.Time) string {
	return fmt.Sprintf("%s-%d.%s", Slug(title), now.UnixMilli(), f)
}

// Report is the input to every analytics export.
type Report struct {
	Campaigns   []model.Campaign   `json:"campaigns"`
	Metrics     dashboard.Counters `json:"metrics"`
	Profile     model.Profile      `json:"-"`
	GeneratedAt time.Time          `json:"-"`
}

// Summary aggregates saved campaign metrics.
type Summary struct {
	TotalCampaigns   int     `json:"totalCampaigns"`
	ActiveCampaigns  int     `json:"activeCampaigns"`
	TotalImpressions int     `json:"totalImpressions"`
	TotalClicks      int     `json:"totalClicks"`
	AverageCTR       float64 `json:"averageCTR"`
}

// Summary totals the report campaigns. AverageCTR is the live dashboard CTR.
func (r Report) Summary() Summary {
	s := Summary{
		TotalCampaigns: len(r.Campaigns),
		AverageCTR:     r.Metrics.CTR,
	}
	for _, c := range r.Campaigns {
		if c.Status == model.CampaignStatusActive {
			s.ActiveCampaigns++
		}
		s.TotalImpressions += c.Metrics.Impressions
		s.TotalClicks += c.Metrics.Clicks
	}
	return s
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
