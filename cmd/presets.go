package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tcgdex/filter"
	"github.com/s0up4200/tcgdex/tcgdex"
)

var (
	presetSet   string
	presetTerms []string
)

// presetsCmd represents the presets command
var presetsCmd = &cobra.Command{
	Use:   "presets [NAME...]",
	Short: "Count the cards each filter preset matches",
	Long: `Fetch the full record of a set of cards and report how many of them every
configured filter preset matches. Name presets to check only those.

  tcgdex presets --set swsh3
  tcgdex presets fire-heavy --filter name=charizard`,
	RunE: runPresets,
}

func init() {
	presetsCmd.Flags().StringVar(&presetSet, "set", "", "check the cards of this set")
	presetsCmd.Flags().StringSliceVar(&presetTerms, "filter", nil, "TCGdex filter term selecting the cards to check (repeatable)")
	presetsCmd.MarkFlagsMutuallyExclusive("set", "filter")
	presetsCmd.MarkFlagsOneRequired("set", "filter")

	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	show := printer(cmd)

	if len(filters.ListFilters()) == 0 {
		return show("No filter presets configured\n", nil)
	}

	briefs, err := presetCards(cmd)
	if err := emptyAsNone(err); err != nil {
		return describe(err)
	}

	logger.Info().Int("cards", len(briefs)).Msg("Fetching card details")
	cards, err := client.Cards().Details(ctx, briefs)
	if err != nil {
		return describe(err)
	}

	envs := make([]filter.Env, len(cards))
	for i, card := range cards {
		envs[i] = filter.CardEnv(card)
	}

	var results map[string][]int
	if len(args) > 0 {
		results, err = filters.EvaluateSelected(ctx, args, envs)
	} else {
		results, err = filters.EvaluateAll(ctx, envs)
	}
	if err != nil {
		return err
	}

	return show(output.FormatValues("Preset matches", presetLines(results, len(cards))))
}

// presetCards lists the cards selected by --set or --filter
func presetCards(cmd *cobra.Command) (tcgdex.CardList, error) {
	if presetSet != "" {
		set, err := client.Sets().Get(cmd.Context(), presetSet)
		if err != nil {
			return nil, err
		}
		return set.Cards, nil
	}
	return client.Cards().List(cmd.Context(), tcgdex.NewQuery().WithFiltering(presetTerms...))
}

// presetLines renders "name: matched/total (expression)" per evaluated
// preset, sorted by name
func presetLines(results map[string][]int, total int) []string {
	lines := make([]string, 0, len(results))
	for _, name := range filters.ListFilters() {
		matches, ok := results[name]
		if !ok {
			continue
		}
		f, _ := filters.GetFilter(name)
		lines = append(lines, fmt.Sprintf("%s: %d/%d (%s)", name, len(matches), total, f.Expression()))
	}
	return lines
}
