package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/render"
	"github.com/sells-group/creativesync/internal/trends"
)

// briefFlags are the campaign parameters shared by generate, variants and
// trends apply.
type briefFlags struct {
	name         string
	product      string
	audience     string
	campaignType string
	tone         string
	platform     string
	trend        string
}

func (f *briefFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "campaign name (default: \"<type> - <timestamp>\")")
	fl.StringVar(&f.product, "brief", "", "product brief describing what to promote")
	fl.StringVar(&f.audience, "audience", "Clubcard Members", "target audience")
	fl.StringVar(&f.campaignType, "type", "Product Launch", "campaign type")
	fl.StringVar(&f.tone, "tone", "Professional", "tone of voice")
	fl.StringVar(&f.platform, "platform", "Social Media", "delivery platform")
	fl.StringVar(&f.trend, "trend", "", "apply a detected trend preset before generating")
}

// brief assembles the brief, overlaying the trend preset when one is named.
func (f *briefFlags) brief() (model.Brief, error) {
	b := model.Brief{
		Name:         f.name,
		ProductBrief: f.product,
		Audience:     model.ParseAudience(f.audience),
		CampaignType: f.campaignType,
		Tone:         model.ParseTone(f.tone),
		Platform:     model.ParsePlatform(f.platform),
	}
	if f.trend == "" {
		return b, nil
	}
	return trends.Apply(f.trend, b)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatPrediction prints a forecast block.
func formatPrediction(w io.Writer, p model.Prediction) {
	fmt.Fprintf(w, "Predicted CTR:   %.2f%%\n", p.CTR)
	fmt.Fprintf(w, "Est. Reach:      %d\n", p.Reach)
	fmt.Fprintf(w, "Engagement:      %d/100\n", p.Engagement)
	fmt.Fprintf(w, "AI Confidence:   %d%%\n", p.Confidence)
}

// printCopy renders markdown copy for the terminal, falling back to raw text.
func printCopy(w io.Writer, content, theme string) {
	out, err := render.Terminal(content, terminalWidth(), theme)
	if err != nil {
		fmt.Fprintln(w, content)
		return
	}
	fmt.Fprint(w, out)
}

func terminalWidth() int {
	if cols := strings.TrimSpace(os.Getenv("COLUMNS")); cols != "" {
		var n int
		if _, err := fmt.Sscan(cols, &n); err == nil && n > 20 {
			return n
		}
	}
	return 80
}
