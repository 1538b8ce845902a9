package formatter

import (
	"encoding/json"

	"github.com/s0up4200/tcgdex/tcgdex"
)

// JSONFormatter renders records as indented JSON, in the shape TCGdex uses
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) FormatCards(cards tcgdex.CardList) (string, error) {
	return marshal(emptyIfNil(cards))
}

func (f *JSONFormatter) FormatCardDetails(cards []*tcgdex.Card) (string, error) {
	return marshal(emptyIfNil(cards))
}

func (f *JSONFormatter) FormatCard(card *tcgdex.Card) (string, error) {
	return marshal(card)
}

func (f *JSONFormatter) FormatSets(sets tcgdex.SetList) (string, error) {
	return marshal(emptyIfNil(sets))
}

func (f *JSONFormatter) FormatSet(set *tcgdex.Set) (string, error) {
	return marshal(set)
}

func (f *JSONFormatter) FormatSeries(series tcgdex.SerieList) (string, error) {
	return marshal(emptyIfNil(series))
}

func (f *JSONFormatter) FormatSerie(serie *tcgdex.Serie) (string, error) {
	return marshal(serie)
}

// FormatValues ignores title; the output is a bare JSON array
func (f *JSONFormatter) FormatValues(_ string, values []string) (string, error) {
	return marshal(emptyIfNil(values))
}

func marshal(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// emptyIfNil makes nil lists render as [] instead of null
func emptyIfNil[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
