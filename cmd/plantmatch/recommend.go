package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/HerbHall/plantmatch/internal/catalog"
	"github.com/HerbHall/plantmatch/internal/recommend"
)

type recommendFlags struct {
	light, climate, aesthetic, watering, mbti string
	query                                     string
	limit                                     int
	json                                      bool
}

func newRecommendCmd(configPath func() string) *cobra.Command {
	var f recommendFlags

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank the catalog against preferences and print the best matches",
		Example: `  plantmatch recommend --light "bright indirect" --climate tropical
  plantmatch recommend --mbti INFJ --limit 3 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, _, err := loadSettings(configPath())
			if err != nil {
				return err
			}
			engine, err := newEngine(settings.Catalog)
			if err != nil {
				return err
			}
			return runRecommend(cmd.OutOrStdout(), engine, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.light, "light", "", "light available (e.g. \"bright indirect\", \"shade\")")
	fl.StringVar(&f.climate, "climate", "", "climate (e.g. tropical, arid)")
	fl.StringVar(&f.aesthetic, "aesthetic", "", "intended use (e.g. \"table top\", hanging)")
	fl.StringVar(&f.watering, "watering", "", "watering preference: light, moderate or frequent")
	fl.StringVar(&f.mbti, "mbti", "", "MBTI personality type (e.g. INFJ)")
	fl.StringVarP(&f.query, "query", "q", "", "only show plants whose names, category, climate or use match this text")
	fl.IntVarP(&f.limit, "limit", "n", 10, "maximum number of plants to print (0 for all)")
	fl.BoolVar(&f.json, "json", false, "print the full result as JSON")
	return cmd
}

func runRecommend(w io.Writer, engine *catalog.Engine, f recommendFlags) error {
	filter := catalog.FilterFromValues(f.light, f.climate, f.aesthetic, f.watering, f.mbti)
	res, err := engine.Recommend(filter, f.query)
	if err != nil {
		return err
	}
	if f.limit > 0 && len(res.Plants) > f.limit {
		res.Plants = res.Plants[:f.limit]
	}

	if f.json {
		// Groups are omitted since they would not match the truncated list.
		res.Groups = nil
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if len(res.Plants) == 0 {
		_, err := fmt.Fprintln(w, "No plants match these preferences.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tMATCH\tBAND\tNAME\tLATIN\tMATCHED")
	for i := range res.Plants {
		p := &res.Plants[i]
		band := "-"
		if res.HasActiveFilter {
			if b, ok := recommend.BandFor(p.NormalizedScore); ok {
				if meta, ok := recommend.BandInfo(b); ok {
					band = meta.Label
				}
			}
		}
		matched := strings.Join(p.MatchedFactors, ", ")
		if matched == "" {
			matched = "-"
		}
		fmt.Fprintf(tw, "%d\t%.0f%%\t%s\t%s\t%s\t%s\n", i+1, p.Percent(), band, p.DisplayName(), p.Latin, matched)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%d of %d matching plants shown.\n", len(res.Plants), res.Count)
	return err
}
