package filter

import (
	"strings"
	"time"

	"github.com/s0up4200/tcgdex/tcgdex"
)

// releaseLayout is the date format TCGdex uses for set release dates
const releaseLayout = "2006-01-02"

// CardEnv exposes a detailed card to expressions
func CardEnv(card *tcgdex.Card) Env {
	env := make(Env, 48)
	if card == nil {
		return env
	}

	env["Card"] = card

	// Direct card properties for convenience
	env["ID"] = card.ID
	env["LocalID"] = card.LocalID
	env["Name"] = card.Name
	env["Category"] = card.Category
	env["Illustrator"] = card.Illustrator
	env["Rarity"] = card.Rarity
	env["HP"] = card.HP
	env["Types"] = card.Types
	env["DexID"] = card.DexID
	env["Stage"] = card.Stage
	env["EvolveFrom"] = card.EvolveFrom
	env["Retreat"] = card.Retreat
	env["RegulationMark"] = card.RegulationMark
	env["TrainerType"] = card.TrainerType
	env["EnergyType"] = card.EnergyType
	env["SetID"] = card.Set.ID
	env["SetName"] = card.Set.Name
	env["Standard"] = card.Legal.Standard
	env["Expanded"] = card.Legal.Expanded
	env["Updated"] = parseTime(card.Updated)

	attackNames := make([]string, len(card.Attacks))
	for i, attack := range card.Attacks {
		attackNames[i] = attack.Name
	}
	env["Attacks"] = attackNames

	abilityNames := make([]string, len(card.Abilities))
	for i, ability := range card.Abilities {
		abilityNames[i] = ability.Name
	}
	env["Abilities"] = abilityNames

	// Card-specific helpers using closures
	env["hasType"] = createContainsFoldFunc(card.Types)
	env["hasAttack"] = createContainsFoldFunc(attackNames)
	env["hasAbility"] = createContainsFoldFunc(abilityNames)
	env["weakTo"] = createWeaknessFunc(card.Weaknesses)
	env["resistantTo"] = createWeaknessFunc(card.Resistances)
	env["hasVariant"] = createHasVariantFunc(card.Variants)
	env["legalIn"] = createLegalInFunc(card.Legal)
	env["maxDamage"] = createMaxDamageFunc(card.Attacks)

	return env
}

// CardBriefEnv exposes a card list entry to expressions
func CardBriefEnv(card tcgdex.CardBrief) Env {
	return Env{
		"Card":    card,
		"ID":      card.ID,
		"LocalID": card.LocalNumber(),
		"Name":    card.Name,
		"SetID":   card.SetID(),
		"Image":   card.Image,
	}
}

// SetEnv exposes a detailed set to expressions
func SetEnv(set *tcgdex.Set) Env {
	env := make(Env, 16)
	if set == nil {
		return env
	}

	env["Set"] = set
	env["ID"] = set.ID
	env["Name"] = set.Name
	env["SerieID"] = set.Serie.ID
	env["SerieName"] = set.Serie.Name
	env["ReleaseDate"] = parseTime(set.ReleaseDate)
	env["Total"] = set.CardCount.Total
	env["Official"] = set.CardCount.Official
	env["Standard"] = set.Legal.Standard
	env["Expanded"] = set.Legal.Expanded
	env["TCGOnline"] = set.TCGOnline
	env["legalIn"] = createLegalInFunc(set.Legal)

	return env
}

// SetBriefEnv exposes a set list entry to expressions
func SetBriefEnv(set tcgdex.SetBrief) Env {
	return Env{
		"Set":      set,
		"ID":       set.ID,
		"Name":     set.Name,
		"Total":    set.CardCount.Total,
		"Official": set.CardCount.Official,
	}
}

// SerieEnv exposes a detailed serie to expressions
func SerieEnv(serie *tcgdex.Serie) Env {
	env := make(Env, 8)
	if serie == nil {
		return env
	}

	setIDs := make([]string, len(serie.Sets))
	for i, set := range serie.Sets {
		setIDs[i] = set.ID
	}

	env["Serie"] = serie
	env["ID"] = serie.ID
	env["Name"] = serie.Name
	env["SetCount"] = len(serie.Sets)
	env["hasSet"] = createContainsFoldFunc(setIDs)

	return env
}

// SerieBriefEnv exposes a serie list entry to expressions
func SerieBriefEnv(serie tcgdex.SerieBrief) Env {
	return Env{
		"Serie": serie,
		"ID":    serie.ID,
		"Name":  serie.Name,
	}
}

// recordHelperStubs gives the compiler the signature of every record helper.
// The real closures are bound per record at evaluation time.
func recordHelperStubs() map[string]any {
	return map[string]any{
		"hasType":     func(string) bool { return false },
		"hasAttack":   func(string) bool { return false },
		"hasAbility":  func(string) bool { return false },
		"hasSet":      func(string) bool { return false },
		"weakTo":      func(string) bool { return false },
		"resistantTo": func(string) bool { return false },
		"hasVariant":  func(string) bool { return false },
		"legalIn":     func(string) bool { return false },
		"maxDamage":   func() int { return 0 },
	}
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	t, _ := time.Parse(releaseLayout, s)
	return t
}

func createContainsFoldFunc(values []string) func(string) bool {
	// Pre-convert to lowercase for case-insensitive comparison
	lower := make([]string, len(values))
	for i, v := range values {
		lower[i] = strings.ToLower(v)
	}
	return func(target string) bool {
		target = strings.ToLower(target)
		for _, v := range lower {
			if v == target {
				return true
			}
		}
		return false
	}
}

func createWeaknessFunc(weaknesses []tcgdex.Weakness) func(string) bool {
	return func(energy string) bool {
		for _, w := range weaknesses {
			if strings.EqualFold(w.Type, energy) {
				return true
			}
		}
		return false
	}
}

func createHasVariantFunc(v tcgdex.Variants) func(string) bool {
	return func(name string) bool {
		switch strings.ToLower(name) {
		case "normal":
			return v.Normal
		case "reverse":
			return v.Reverse
		case "holo":
			return v.Holo
		case "firstedition", "first_edition", "1st":
			return v.FirstEdition
		case "wpromo":
			return v.WPromo
		}
		return false
	}
}

func createLegalInFunc(legal tcgdex.Legal) func(string) bool {
	return func(format string) bool {
		switch strings.ToLower(format) {
		case "standard":
			return legal.Standard
		case "expanded":
			return legal.Expanded
		}
		return false
	}
}

// createMaxDamageFunc returns the highest base damage among attacks; "30+"
// and "20×" count as 30 and 20
func createMaxDamageFunc(attacks []tcgdex.Attack) func() int {
	best := 0
	for _, attack := range attacks {
		if d := leadingInt(string(attack.Damage)); d > best {
			best = d
		}
	}
	return func() int {
		return best
	}
}

func leadingInt(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
