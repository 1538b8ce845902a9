package formatter

import (
	"fmt"
	"strings"

	"github.com/s0up4200/tcgdex/tcgdex"
)

// Output formats
const (
	FormatTree = "tree"
	FormatJSON = "json"
)

// Formatter renders TCGdex records for the terminal
type Formatter interface {
	FormatCards(cards tcgdex.CardList) (string, error)
	FormatCardDetails(cards []*tcgdex.Card) (string, error)
	FormatCard(card *tcgdex.Card) (string, error)
	FormatSets(sets tcgdex.SetList) (string, error)
	FormatSet(set *tcgdex.Set) (string, error)
	FormatSeries(series tcgdex.SerieList) (string, error)
	FormatSerie(serie *tcgdex.Serie) (string, error)
	FormatValues(title string, values []string) (string, error)
}

// Options contains options for formatting output
type Options struct {
	// ShowDetails adds secondary fields such as images, legality and card
	// counts to tree output
	ShowDetails bool
}

// New returns the formatter for format ("tree" or "json")
func New(format string, options Options) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatTree, "":
		return NewConsoleFormatter(options), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (must be %s or %s)", format, FormatTree, FormatJSON)
	}
}
