package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/tcgdex/tcgdex"
)

func TestIsSimpleFilter(t *testing.T) {
	tests := []struct {
		filter   string
		expected bool
	}{
		{"hp=100", true},
		{"name=furret&hp>=100", true},
		{"types=Fire rarity!=Common", true},
		{"set.id=swsh3", true},
		{"", false},
		{`HP >= 100`, false},
		{`Name=="Furret"`, false},
		{`hasType("Fire")`, false},
		{"unknown=1", false},
		{`Name="Pikachu"`, true},
		{`Illustrator!=""`, true},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSimpleFilter(tt.filter))
		})
	}
}

func TestConvertSimpleFilter(t *testing.T) {
	tests := []struct {
		filter   string
		expected string
		wantErr  bool
	}{
		{"hp=100", "HP == 100", false},
		{"hp>=100&retreat<2", "HP >= 100 and Retreat < 2", false},
		{"name=furret", `containsFold(Name, "furret")`, false},
		{"rarity!=rare", `not containsFold(Rarity, "rare")`, false},
		{"id=swsh3-136", `equalFold(ID, "swsh3-136")`, false},
		{"types=Fire", `any(Types, {lower(#) == lower("Fire")})`, false},
		{"attacks!=Tackle", `not any(Attacks, {lower(#) == lower("Tackle")})`, false},
		{"standard=true", "Standard == true", false},
		{`name="Pikachu"`, `equalFold(Name, "Pikachu")`, false},
		{`illustrator!=""`, `not equalFold(Illustrator, "")`, false},
		{`hp="100"`, "HP == 100", false},
		{`types="Fire"`, `any(Types, {lower(#) == lower("Fire")})`, false},
		{"", "", false},
		{"hp=many", "", true},
		{"name>abc", "", true},
		{"standard=maybe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got, err := ConvertSimpleFilter(tt.filter)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSimpleSyntaxQuotedValues(t *testing.T) {
	compiler := NewExprCompiler(WithSimpleSyntax())

	pikachu := CardEnv(&tcgdex.Card{ID: "base1-58", Name: "Pikachu", Illustrator: "Mitsuhiro Arita"})
	pikachuV := CardEnv(&tcgdex.Card{ID: "swsh4-43", Name: "Pikachu V"})
	unknown := CardEnv(&tcgdex.Card{ID: "xy-1", Name: "Venusaur"})

	tests := []struct {
		expression string
		env        Env
		expected   bool
	}{
		{`Name="Pikachu"`, pikachu, true},
		{`Name="Pikachu"`, pikachuV, false},
		{`Name=Pikachu`, pikachuV, true},
		{`Illustrator!=""`, pikachu, true},
		{`Illustrator!=""`, unknown, false},
		{`Illustrator=""`, unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			matched, err := f.Run(tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, matched)
		})
	}
}
