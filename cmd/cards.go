package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/tcgdex/filter"
)

var cardFlags listFlags

// cardsCmd represents the cards command
var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List or look up cards",
	Long: `List cards, optionally filtered by TCGdex and by an expression, or look up
a single card with --id.

Expressions run against the list entries (ID, LocalID, Name, SetID), or
against the full card when --details is set, for example:
  tcgdex cards --filter name=pikachu
  tcgdex cards --filter name=charizard --details --where 'HP >= 150 and legalIn("expanded")'
  tcgdex cards --id swsh3-136
  tcgdex cards --preset fire-heavy --details`,
	Args: cobra.NoArgs,
	RunE: runCards,
}

func init() {
	cardFlags.register(cardsCmd, "card")
	rootCmd.AddCommand(cardsCmd)
}

func runCards(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	show := printer(cmd)

	if cardFlags.id != "" {
		card, err := client.Cards().Get(ctx, cardFlags.id)
		if err != nil {
			return describe(err)
		}
		return show(output.FormatCard(card))
	}

	spec, err := cardFlags.spec()
	if err != nil {
		return err
	}
	where, err := cardFlags.filter()
	if err != nil {
		return err
	}

	logger.Debug().Str("query", spec.Encode()).Msg("Listing cards")
	cards, err := client.Cards().List(ctx, spec)
	if err := emptyAsNone(err); err != nil {
		return describe(err)
	}

	if !cardFlags.details {
		cards, err = apply(ctx, where, cards, filter.CardBriefEnv)
		if err != nil {
			return err
		}
		return show(output.FormatCards(cards))
	}

	logger.Info().Int("cards", len(cards)).Msg("Fetching card details")
	detailed, err := client.Cards().Details(ctx, cards)
	if err != nil {
		return describe(err)
	}
	detailed, err = apply(ctx, where, detailed, filter.CardEnv)
	if err != nil {
		return err
	}
	return show(output.FormatCardDetails(detailed))
}

// setCardCmd looks up a card by its set and local number
var setCardCmd = &cobra.Command{
	Use:     "card SET LOCAL_ID",
	Short:   "Look up a card by set id and number inside the set",
	Example: `  tcgdex sets card swsh3 136`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := client.Sets().Card(cmd.Context(), args[0], args[1])
		if err != nil {
			return describe(err)
		}
		return printer(cmd)(output.FormatCard(card))
	},
}
