package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tcgdex/tcgdex"
)

// valuesCmd groups the endpoints that list plain values
var valuesCmd = &cobra.Command{
	Use:   "values",
	Short: "List the values TCGdex knows for a card field",
	Long: `List every value TCGdex knows for a card field. The values can be used in
--filter terms, for example "tcgdex cards --filter types=Fire".`,
}

func init() {
	valuesCmd.AddCommand(
		stringValuesCmd("types", "Types", "List Pokémon types", (*tcgdex.Client).Types),
		stringValuesCmd("categories", "Categories", "List card categories", (*tcgdex.Client).Categories),
		stringValuesCmd("illustrators", "Illustrators", "List card illustrators", (*tcgdex.Client).Illustrators),
		stringValuesCmd("rarities", "Rarities", "List card rarities", (*tcgdex.Client).Rarities),
		intValuesCmd("hp", "HP", "List Pokémon HP values", (*tcgdex.Client).HP),
		intValuesCmd("retreats", "Retreat costs", "List retreat costs", (*tcgdex.Client).Retreats),
	)
	rootCmd.AddCommand(valuesCmd)
}

func stringValuesCmd(use, title, short string, accessor func(*tcgdex.Client) *tcgdex.Values[string]) *cobra.Command {
	return valueCmd(use, short, func(ctx context.Context) (string, error) {
		values, err := accessor(client).List(ctx)
		if err != nil {
			return "", describe(err)
		}
		return output.FormatValues(title, values)
	})
}

func intValuesCmd(use, title, short string, accessor func(*tcgdex.Client) *tcgdex.Values[int]) *cobra.Command {
	return valueCmd(use, short, func(ctx context.Context) (string, error) {
		values, err := accessor(client).List(ctx)
		if err != nil {
			return "", describe(err)
		}
		return output.FormatValues(title, itoa(values))
	})
}

func valueCmd(use, short string, run func(context.Context) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printer(cmd)(run(cmd.Context()))
		},
	}
}

func itoa(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}
