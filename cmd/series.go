package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/tcgdex/filter"
)

var serieFlags listFlags

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:     "series",
	Aliases: []string{"serie"},
	Short:   "List or look up series",
	Long: `List series, optionally filtered by TCGdex and by an expression, or look
up a single serie and its sets with --id.

  tcgdex series
  tcgdex series --id swsh
  tcgdex series --details --where 'SetCount > 10'`,
	Args: cobra.NoArgs,
	RunE: runSeries,
}

func init() {
	serieFlags.register(seriesCmd, "serie")
	rootCmd.AddCommand(seriesCmd)
}

func runSeries(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	show := printer(cmd)

	if serieFlags.id != "" {
		serie, err := client.Series().Get(ctx, serieFlags.id)
		if err != nil {
			return describe(err)
		}
		return show(output.FormatSerie(serie))
	}

	spec, err := serieFlags.spec()
	if err != nil {
		return err
	}
	where, err := serieFlags.filter()
	if err != nil {
		return err
	}

	series, err := client.Series().List(ctx, spec)
	if err := emptyAsNone(err); err != nil {
		return describe(err)
	}

	if !serieFlags.details {
		series, err = apply(ctx, where, series, filter.SerieBriefEnv)
		if err != nil {
			return err
		}
		return show(output.FormatSeries(series))
	}

	detailed, err := client.Series().Details(ctx, series)
	if err != nil {
		return describe(err)
	}
	detailed, err = apply(ctx, where, detailed, filter.SerieEnv)
	if err != nil {
		return err
	}

	for _, serie := range detailed {
		if err := show(output.FormatSerie(serie)); err != nil {
			return err
		}
	}
	return nil
}
