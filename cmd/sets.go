package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/tcgdex/filter"
)

var setFlags listFlags

// setsCmd represents the sets command
var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List or look up sets",
	Long: `List sets, optionally filtered by TCGdex and by an expression, or look up
a single set with --id.

Expressions run against the list entries (ID, Name, Total, Official), or
against the full set when --details is set, for example:
  tcgdex sets --filter name=darkness
  tcgdex sets --details --where 'SerieID == "swsh" and Total > 200'
  tcgdex sets --id swsh3 --lang fr`,
	Args: cobra.NoArgs,
	RunE: runSets,
}

func init() {
	setFlags.register(setsCmd, "set")
	setsCmd.AddCommand(setCardCmd)
	rootCmd.AddCommand(setsCmd)
}

func runSets(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	show := printer(cmd)

	if setFlags.id != "" {
		set, err := client.Sets().Get(ctx, setFlags.id)
		if err != nil {
			return describe(err)
		}
		return show(output.FormatSet(set))
	}

	spec, err := setFlags.spec()
	if err != nil {
		return err
	}
	where, err := setFlags.filter()
	if err != nil {
		return err
	}

	logger.Debug().Str("query", spec.Encode()).Msg("Listing sets")
	sets, err := client.Sets().List(ctx, spec)
	if err := emptyAsNone(err); err != nil {
		return describe(err)
	}

	if !setFlags.details {
		sets, err = apply(ctx, where, sets, filter.SetBriefEnv)
		if err != nil {
			return err
		}
		return show(output.FormatSets(sets))
	}

	logger.Info().Int("sets", len(sets)).Msg("Fetching set details")
	detailed, err := client.Sets().Details(ctx, sets)
	if err != nil {
		return describe(err)
	}
	detailed, err = apply(ctx, where, detailed, filter.SetEnv)
	if err != nil {
		return err
	}

	for _, set := range detailed {
		if err := show(output.FormatSet(set)); err != nil {
			return err
		}
	}
	return nil
}
