package formatter

import (
	"fmt"
	"strings"

	"github.com/s0up4200/tcgdex/tcgdex"
)

// ConsoleFormatter provides tree-style console output
type ConsoleFormatter struct {
	options Options
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(options Options) *ConsoleFormatter {
	return &ConsoleFormatter{options: options}
}

// treeWriter writes one branch per record
type treeWriter struct {
	sb     strings.Builder
	indent string
}

// header writes "Title (n):" using the plural when n != 1
func (w *treeWriter) header(singular, plural string, n int) {
	title := plural
	if n == 1 {
		title = singular
	}
	fmt.Fprintf(&w.sb, "\n%s (%d):\n\n", title, n)
}

// branch starts a record and sets the indent of its detail lines
func (w *treeWriter) branch(isLast bool, format string, args ...any) {
	prefix := "├"
	w.indent = "│   "
	if isLast {
		prefix = "╰"
		w.indent = "    "
	}
	fmt.Fprintf(&w.sb, "%s── %s\n", prefix, fmt.Sprintf(format, args...))
}

// line writes a detail line of the current record, skipping empty values
func (w *treeWriter) line(label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(&w.sb, "%s%s: %s\n", w.indent, label, value)
}

func (w *treeWriter) separator(isLast bool) {
	if !isLast {
		w.sb.WriteString("│\n")
	}
}

func (w *treeWriter) String() string {
	w.sb.WriteString("\n")
	return w.sb.String()
}

// FormatCards formats a brief card list
func (f *ConsoleFormatter) FormatCards(cards tcgdex.CardList) (string, error) {
	if len(cards) == 0 {
		return "No cards found\n", nil
	}

	var w treeWriter
	w.header("Card", "Cards", len(cards))
	for i, card := range cards {
		isLast := i == len(cards)-1
		w.branch(isLast, "%s [%s]", card.Name, card.ID)
		if f.options.ShowDetails {
			w.line("Image", card.ImageURL("high", "png"))
		}
		w.separator(isLast)
	}
	return w.String(), nil
}

// FormatCardDetails formats detailed cards as a tree
func (f *ConsoleFormatter) FormatCardDetails(cards []*tcgdex.Card) (string, error) {
	if len(cards) == 0 {
		return "No cards found\n", nil
	}

	var w treeWriter
	w.header("Card", "Cards", len(cards))
	for i, card := range cards {
		isLast := i == len(cards)-1
		f.writeCard(&w, card, isLast)
		w.separator(isLast)
	}
	return w.String(), nil
}

// FormatCard formats a single detailed card
func (f *ConsoleFormatter) FormatCard(card *tcgdex.Card) (string, error) {
	var w treeWriter
	w.sb.WriteString("\n")
	f.writeCard(&w, card, true)
	return w.String(), nil
}

func (f *ConsoleFormatter) writeCard(w *treeWriter, card *tcgdex.Card, isLast bool) {
	w.branch(isLast, "%s [%s]", card.Name, card.ID)

	w.line("Set", joinNonEmpty(" ", card.Set.Name, bracket(card.Set.ID), cardNumber(card)))
	w.line("Category", card.Category)
	w.line("Rarity", card.Rarity)
	if card.HP > 0 {
		w.line("HP", fmt.Sprint(card.HP))
	}
	w.line("Types", strings.Join(card.Types, ", "))
	w.line("Stage", joinNonEmpty(" ", card.Stage, evolvesFrom(card.EvolveFrom)))

	for _, ability := range card.Abilities {
		w.line(nonEmpty(ability.Type, "Ability"), ability.Name)
	}
	for _, attack := range card.Attacks {
		w.line("Attack", joinNonEmpty(" ", attack.Name, string(attack.Damage), costOf(attack.Cost)))
	}
	w.line("Weakness", weaknesses(card.Weaknesses))
	w.line("Resistance", weaknesses(card.Resistances))
	if card.Retreat > 0 {
		w.line("Retreat", fmt.Sprint(card.Retreat))
	}
	w.line("Effect", card.Effect)
	w.line("Trainer", card.TrainerType)
	w.line("Energy", card.EnergyType)

	if !f.options.ShowDetails {
		return
	}
	w.line("Illustrator", card.Illustrator)
	w.line("Regulation", card.RegulationMark)
	w.line("Variants", variants(card.Variants))
	w.line("Legal", legality(card.Legal))
	w.line("Image", card.ImageURL("high", "png"))
}

// FormatSets formats a brief set list
func (f *ConsoleFormatter) FormatSets(sets tcgdex.SetList) (string, error) {
	if len(sets) == 0 {
		return "No sets found\n", nil
	}

	var w treeWriter
	w.header("Set", "Sets", len(sets))
	for i, set := range sets {
		isLast := i == len(sets)-1
		w.branch(isLast, "%s [%s]", set.Name, set.ID)
		if f.options.ShowDetails {
			w.line("Cards", cardCount(set.CardCount.Official, set.CardCount.Total))
			w.line("Logo", set.Logo)
		}
		w.separator(isLast)
	}
	return w.String(), nil
}

// FormatSet formats a detailed set and its cards
func (f *ConsoleFormatter) FormatSet(set *tcgdex.Set) (string, error) {
	var w treeWriter
	w.sb.WriteString("\n")
	w.branch(true, "%s [%s]", set.Name, set.ID)
	w.line("Serie", joinNonEmpty(" ", set.Serie.Name, bracket(set.Serie.ID)))
	w.line("Released", set.ReleaseDate)
	w.line("Cards", cardCount(set.CardCount.Official, set.CardCount.Total))
	w.line("TCG Online", set.TCGOnline)

	if f.options.ShowDetails {
		w.line("Legal", legality(set.Legal))
		w.line("Logo", set.Logo)
		w.line("Symbol", set.Symbol)
		for _, card := range set.Cards {
			fmt.Fprintf(&w.sb, "%s  - %s %s\n", w.indent, card.LocalNumber(), card.Name)
		}
	}
	return w.String(), nil
}

// FormatSeries formats a brief serie list
func (f *ConsoleFormatter) FormatSeries(series tcgdex.SerieList) (string, error) {
	if len(series) == 0 {
		return "No series found\n", nil
	}

	var w treeWriter
	w.header("Serie", "Series", len(series))
	for i, serie := range series {
		isLast := i == len(series)-1
		w.branch(isLast, "%s [%s]", serie.Name, serie.ID)
		if f.options.ShowDetails {
			w.line("Logo", serie.Logo)
		}
		w.separator(isLast)
	}
	return w.String(), nil
}

// FormatSerie formats a detailed serie and its sets
func (f *ConsoleFormatter) FormatSerie(serie *tcgdex.Serie) (string, error) {
	var w treeWriter
	w.sb.WriteString("\n")
	w.branch(true, "%s [%s]", serie.Name, serie.ID)
	w.line("Sets", fmt.Sprint(len(serie.Sets)))
	for _, set := range serie.Sets {
		fmt.Fprintf(&w.sb, "%s  - %s [%s]\n", w.indent, set.Name, set.ID)
	}
	if f.options.ShowDetails {
		w.line("Logo", serie.Logo)
	}
	return w.String(), nil
}

// FormatValues formats a value list such as types or rarities
func (f *ConsoleFormatter) FormatValues(title string, values []string) (string, error) {
	if len(values) == 0 {
		return fmt.Sprintf("No %s found\n", strings.ToLower(title)), nil
	}

	var w treeWriter
	fmt.Fprintf(&w.sb, "\n%s (%d):\n\n", title, len(values))
	for i, value := range values {
		w.branch(i == len(values)-1, "%s", value)
	}
	return w.String(), nil
}

func cardNumber(card *tcgdex.Card) string {
	if card.LocalID == "" {
		return ""
	}
	if total := card.Set.CardCount.Official; total > 0 {
		return fmt.Sprintf("#%s/%d", card.LocalID, total)
	}
	return "#" + card.LocalID
}

func cardCount(official, total int) string {
	if total == 0 && official == 0 {
		return ""
	}
	if total > official {
		return fmt.Sprintf("%d (+%d secret)", official, total-official)
	}
	return fmt.Sprint(total)
}

func weaknesses(list []tcgdex.Weakness) string {
	parts := make([]string, 0, len(list))
	for _, w := range list {
		parts = append(parts, joinNonEmpty(" ", w.Type, w.Value))
	}
	return strings.Join(parts, ", ")
}

func variants(v tcgdex.Variants) string {
	var parts []string
	if v.Normal {
		parts = append(parts, "normal")
	}
	if v.Reverse {
		parts = append(parts, "reverse")
	}
	if v.Holo {
		parts = append(parts, "holo")
	}
	if v.FirstEdition {
		parts = append(parts, "1st edition")
	}
	if v.WPromo {
		parts = append(parts, "W promo")
	}
	return strings.Join(parts, ", ")
}

func legality(l tcgdex.Legal) string {
	var parts []string
	if l.Standard {
		parts = append(parts, "standard")
	}
	if l.Expanded {
		parts = append(parts, "expanded")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func costOf(cost []string) string {
	if len(cost) == 0 {
		return ""
	}
	return "(" + strings.Join(cost, ", ") + ")"
}

func evolvesFrom(name string) string {
	if name == "" {
		return ""
	}
	return "(from " + name + ")"
}

func bracket(s string) string {
	if s == "" {
		return ""
	}
	return "[" + s + "]"
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
