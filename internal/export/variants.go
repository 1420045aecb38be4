package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/creativesync/internal/model"
)

// Recommendation labels for variant positions.
const (
	RecommendProfessional = "Professional Approach"
	RecommendHighest      = "Highest Predicted Performance"
	RecommendBalanced     = "Balanced Approach"

	recommendedAction = "Launch best performing variant for maximum ROI"
)

// VariantRow is one variant in a summary.
type VariantRow struct {
	VariantID      string           `json:"variantId"`
	Number         int              `json:"variantNumber"`
	Tone           string           `json:"tone"`
	Content        string           `json:"content"`
	Predictions    model.Prediction `json:"predictions"`
	Recommendation string           `json:"recommendation"`
}

// BestPerformer identifies the variant with the highest predicted CTR.
type BestPerformer struct {
	Variant        int     `json:"variant"`
	ExpectedCTR    float64 `json:"expectedCTR"`
	EstimatedReach int     `json:"estimatedReach"`
}

// Comparison aggregates the predictions of all variants.
type Comparison struct {
	BestPerformer       BestPerformer `json:"bestPerformer"`
	AverageCTR          float64       `json:"averageCTR"`
	TotalEstimatedReach int           `json:"totalEstimatedReach"`
	RecommendedAction   string        `json:"recommendedAction"`
}

// CampaignDetails echoes the brief the variants were generated from.
type CampaignDetails struct {
	BaseCampaign   string `json:"baseCampaign"`
	ProductBrief   string `json:"productBrief"`
	TargetAudience string `json:"targetAudience"`
	CampaignType   string `json:"campaignType"`
	Tone           string `json:"tone"`
	Platform       string `json:"platform"`
}

// VariantSummary is the exported comparison of an A/B variant set.
type VariantSummary struct {
	Title       string          `json:"title"`
	GeneratedBy string          `json:"generatedBy"`
	Company     string          `json:"company"`
	Email       string          `json:"email"`
	ExportDate  time.Time       `json:"exportDate"`
	Campaign    CampaignDetails `json:"campaignDetails"`
	Variants    []VariantRow    `json:"variants"`
	Summary     Comparison      `json:"comparisonSummary"`
}

// SummarizeVariants builds the comparison for variants generated from b.
func SummarizeVariants(b model.Brief, variants []model.Variant, p model.Profile, now time.Time) VariantSummary {
	s := VariantSummary{
		Title:       "CreativeSync AI - Multi-Variant Campaign Summary",
		GeneratedBy: p.DisplayName(),
		Company:     orDefault(p.Company, "Not specified"),
		Email:       orDefault(p.Email, "N/A"),
		ExportDate:  now.UTC(),
		Campaign: CampaignDetails{
			BaseCampaign:   orDefault(b.Name, "Multi-Variant Test"),
			ProductBrief:   orDefault(b.ProductBrief, "N/A"),
			TargetAudience: b.Audience.String(),
			CampaignType:   orDefault(b.CampaignType, "N/A"),
			Tone:           b.Tone.String(),
			Platform:       b.Platform.String(),
		},
		Variants: make([]VariantRow, 0, len(variants)),
	}
	s.Summary.RecommendedAction = recommendedAction
	if len(variants) == 0 {
		return s
	}

	var totalCTR float64
	best := 0
	for i, v := range variants {
		s.Variants = append(s.Variants, VariantRow{
			VariantID:      fmt.Sprintf("Variant %c", 'A'+i),
			Number:         i + 1,
			Tone:           v.ToneLabel,
			Content:        v.Content,
			Predictions:    v.Prediction,
			Recommendation: recommendation(i, len(variants)),
		})
		totalCTR += v.Prediction.CTR
		s.Summary.TotalEstimatedReach += v.Prediction.Reach
		if v.Prediction.CTR > variants[best].Prediction.CTR {
			best = i
		}
		s.Summary.BestPerformer.EstimatedReach = max(s.Summary.BestPerformer.EstimatedReach, v.Prediction.Reach)
	}
	s.Summary.BestPerformer.Variant = best + 1
	s.Summary.BestPerformer.ExpectedCTR = variants[best].Prediction.CTR
	s.Summary.AverageCTR = round2(totalCTR / float64(len(variants)))
	return s
}

// recommendation labels the variant at index i of n. The last variant wins
// over the first when there is only one.
func recommendation(i, n int) string {
	switch {
	case i == n-1:
		return RecommendHighest
	case i == 0:
		return RecommendProfessional
	default:
		return RecommendBalanced
	}
}

// VariantSummaryJSON writes s as indented JSON.
func VariantSummaryJSON(w io.Writer, s VariantSummary) error {
	return writeJSON(w, s)
}

// VariantSummaryCSV writes s as a sectioned spreadsheet-friendly CSV.
func VariantSummaryCSV(w io.Writer, s VariantSummary) error {
	cw := csv.NewWriter(w)
	records := [][]string{
		{"CREATIVESYNC AI - MULTI-VARIANT CAMPAIGN SUMMARY"},
		{""},
		{"Generated By", s.GeneratedBy},
		{"Company", s.Company},
		{"Email", s.Email},
		{"Export Date", s.ExportDate.Format(dateLayout)},
		{""},
		{"CAMPAIGN DETAILS"},
		{"Base Campaign", s.Campaign.BaseCampaign},
		{"Target Audience", s.Campaign.TargetAudience},
		{"Campaign Type", s.Campaign.CampaignType},
		{"Tone", s.Campaign.Tone},
		{"Platform", s.Campaign.Platform},
		{""},
		{"VARIANTS COMPARISON"},
		{"Variant", "Tone", "Predicted CTR", "Engagement Score", "Est. Reach", "AI Confidence", "Recommendation"},
	}
	for _, v := range s.Variants {
		records = append(records, []string{
			v.VariantID,
			v.Tone,
			Percent(v.Predictions.CTR),
			fmt.Sprintf("%d/100", v.Predictions.Engagement),
			Number(v.Predictions.Reach),
			fmt.Sprintf("%d%%", v.Predictions.Confidence),
			v.Recommendation,
		})
	}
	records = append(records,
		[]string{""},
		[]string{"PERFORMANCE SUMMARY"},
		[]string{"Best Performer", fmt.Sprintf("Variant %d", s.Summary.BestPerformer.Variant)},
		[]string{"Highest Expected CTR", Percent(s.Summary.BestPerformer.ExpectedCTR)},
		[]string{"Maximum Reach", Number(s.Summary.BestPerformer.EstimatedReach)},
		[]string{"Average CTR Across Variants", Percent(s.Summary.AverageCTR)},
		[]string{"Total Estimated Reach", Number(s.Summary.TotalEstimatedReach)},
		[]string{"Recommended Action", s.Summary.RecommendedAction},
	)

	if err := cw.WriteAll(records); err != nil {
		return eris.Wrap(err, "export: write variant csv")
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
