package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/creativesync/internal/export"
	"github.com/sells-group/creativesync/internal/model"
)

var (
	variantsBrief  briefFlags
	variantsFormat string
	variantsOut    string
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "Generate three A/B variants of a campaign",
	Long:  "Generates one variant per tone (Professional, Friendly, Urgent), forecasts each and summarizes the comparison.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		f, err := export.ParseFormat(variantsFormat)
		if err != nil || (f != export.FormatJSON && f != export.FormatCSV && f != export.FormatText) {
			return eris.Errorf("variants: --format must be txt, json or csv, got %q", variantsFormat)
		}

		b, err := variantsBrief.brief()
		if err != nil {
			return err
		}

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		variants, err := env.Gen.Variants(ctx, b)
		if err != nil {
			return err
		}
		profile, err := env.Store.GetProfile(ctx)
		if err != nil {
			return err
		}
		now := time.Now()
		summary := export.SummarizeVariants(b, variants, *profile, now)

		var w io.Writer = os.Stdout
		if variantsOut != "" {
			out, err := os.Create(variantsOut)
			if err != nil {
				return eris.Wrap(err, "variants: create output")
			}
			defer out.Close() //nolint:errcheck
			w = out
		}

		switch f {
		case export.FormatJSON:
			return export.VariantSummaryJSON(w, summary)
		case export.FormatCSV:
			return export.VariantSummaryCSV(w, summary)
		default:
			formatVariants(w, variants, summary)
			return nil
		}
	},
}

// formatVariants prints each variant with its forecast, then the comparison.
func formatVariants(w io.Writer, variants []model.Variant, s export.VariantSummary) {
	for _, v := range variants {
		fmt.Fprintf(w, "=== %s: %s [%s]\n", v.Label, v.ToneLabel, v.Source)
		fmt.Fprintln(w, v.Content)
		fmt.Fprintln(w)
		formatPrediction(w, v.Prediction)
		fmt.Fprintln(w)
	}
	if len(variants) == 0 {
		return
	}
	fmt.Fprintf(w, "Best performer: Variant %d (%.2f%% CTR)\n", s.Summary.BestPerformer.Variant, s.Summary.BestPerformer.ExpectedCTR)
	fmt.Fprintf(w, "Average CTR: %.2f%%\n", s.Summary.AverageCTR)
	fmt.Fprintf(w, "Total estimated reach: %s\n", export.Number(s.Summary.TotalEstimatedReach))
}

func init() {
	variantsBrief.bind(variantsCmd)
	variantsCmd.Flags().StringVar(&variantsFormat, "format", "txt", "output format: txt, json or csv")
	variantsCmd.Flags().StringVarP(&variantsOut, "out", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(variantsCmd)
}
