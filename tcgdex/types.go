package tcgdex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Record is a response payload that can tell whether TCGdex returned an
// empty placeholder instead of real data
type Record interface {
	IsEmpty() bool
}

var (
	_ Record = (*Card)(nil)
	_ Record = (*Set)(nil)
	_ Record = (*Serie)(nil)
	_ Record = CardList(nil)
	_ Record = SetList(nil)
	_ Record = SerieList(nil)
)

// Variants lists the print variants a card exists in
type Variants struct {
	// Normal is set when the card exists without any shine
	Normal bool `json:"normal"`
	// Reverse is set when the card exists in reverse holo
	Reverse bool `json:"reverse"`
	// Holo is set when the card exists in holo
	Holo bool `json:"holo"`
	// FirstEdition is set when the card carries the 1st edition stamp
	FirstEdition bool `json:"firstEdition"`
	// WPromo is set for W promo stamped cards
	WPromo bool `json:"wPromo"`
}

// Damage is the damage an attack deals. TCGdex sends it either as a number
// or as a string such as "30+" or "20×".
type Damage string

// UnmarshalJSON accepts both JSON numbers and strings
func (d *Damage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Damage(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("damage must be a number or a string: %w", err)
	}
	*d = Damage(n.String())
	return nil
}

// Attack is a Pokémon attack
type Attack struct {
	Name   string   `json:"name"`
	Cost   []string `json:"cost,omitempty"`
	Effect string   `json:"effect,omitempty"`
	Damage Damage   `json:"damage,omitempty"`
}

// Ability is a Pokémon ability
type Ability struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Effect string `json:"effect"`
}

// Item is the item held by a Pokémon on older cards
type Item struct {
	Name   string `json:"name"`
	Effect string `json:"effect"`
}

// Weakness is a weakness or resistance against an energy type
type Weakness struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// CardCountBrief is the card count carried by brief set records
type CardCountBrief struct {
	// Total includes secret cards
	Total int `json:"total"`
	// Official is the number printed on the cards
	Official int `json:"official"`
}

// CardCount is the detailed card count of a set
type CardCount struct {
	Total        int `json:"total"`
	Official     int `json:"official"`
	Normal       int `json:"normal"`
	Reverse      int `json:"reverse"`
	Holo         int `json:"holo"`
	FirstEdition int `json:"firstEd"`
}

// Legal tells whether a card or set can be played in competitions
type Legal struct {
	Standard bool `json:"standard"`
	Expanded bool `json:"expanded"`
}

// CardBrief is the card projection returned by list endpoints
type CardBrief struct {
	ID      string `json:"id"`
	LocalID string `json:"localId"`
	Name    string `json:"name"`
	Image   string `json:"image,omitempty"`
}

// SetID returns the set part of the card id ("swsh3" for "swsh3-136")
func (c CardBrief) SetID() string {
	setID, _, _ := splitCardID(c.ID)
	return setID
}

// LocalNumber returns the number of the card inside its set, falling back
// to the local part of the card id
func (c CardBrief) LocalNumber() string {
	if c.LocalID != "" {
		return c.LocalID
	}
	_, local, _ := splitCardID(c.ID)
	return local
}

// ImageURL returns the URL of the card picture at the given quality
// ("high" or "low") and extension ("png", "jpg" or "webp")
func (c CardBrief) ImageURL(quality, ext string) string {
	return imageURL(c.Image, quality, ext)
}

// Card is a detailed card record
type Card struct {
	ID          string   `json:"id"`
	LocalID     string   `json:"localId"`
	Name        string   `json:"name"`
	Image       string   `json:"image,omitempty"`
	Category    string   `json:"category"`
	Illustrator string   `json:"illustrator,omitempty"`
	Rarity      string   `json:"rarity"`
	Variants    Variants `json:"variants"`
	Set         SetBrief `json:"set"`
	Legal       Legal    `json:"legal"`
	Updated     string   `json:"updated,omitempty"`

	// Pokémon cards
	DexID          []int      `json:"dexId,omitempty"`
	HP             int        `json:"hp,omitempty"`
	Types          []string   `json:"types,omitempty"`
	EvolveFrom     string     `json:"evolveFrom,omitempty"`
	Description    string     `json:"description,omitempty"`
	Level          string     `json:"level,omitempty"`
	Stage          string     `json:"stage,omitempty"`
	Suffix         string     `json:"suffix,omitempty"`
	Item           *Item      `json:"item,omitempty"`
	Abilities      []Ability  `json:"abilities,omitempty"`
	Attacks        []Attack   `json:"attacks,omitempty"`
	Weaknesses     []Weakness `json:"weaknesses,omitempty"`
	Resistances    []Weakness `json:"resistances,omitempty"`
	Retreat        int        `json:"retreat,omitempty"`
	RegulationMark string     `json:"regulationMark,omitempty"`

	// Trainer cards
	Effect      string `json:"effect,omitempty"`
	TrainerType string `json:"trainerType,omitempty"`

	// Energy cards
	EnergyType string `json:"energyType,omitempty"`
}

// IsEmpty reports whether TCGdex returned a placeholder card
func (c *Card) IsEmpty() bool {
	return c == nil || (c.ID == "" && c.Name == "")
}

// Brief returns the list projection of the card
func (c *Card) Brief() CardBrief {
	return CardBrief{ID: c.ID, LocalID: c.LocalID, Name: c.Name, Image: c.Image}
}

// ImageURL returns the URL of the card picture, see CardBrief.ImageURL
func (c *Card) ImageURL(quality, ext string) string {
	return imageURL(c.Image, quality, ext)
}

// CardList is a list of brief cards
type CardList []CardBrief

// IsEmpty reports whether the list holds no card
func (l CardList) IsEmpty() bool {
	return len(l) == 0
}

// SetBrief is the set projection returned by list endpoints and embedded in
// cards
type SetBrief struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Logo      string         `json:"logo,omitempty"`
	Symbol    string         `json:"symbol,omitempty"`
	CardCount CardCountBrief `json:"cardCount"`
}

// Set is a detailed set record
type Set struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Logo        string     `json:"logo,omitempty"`
	Symbol      string     `json:"symbol,omitempty"`
	CardCount   CardCount  `json:"cardCount"`
	Serie       SerieBrief `json:"serie"`
	TCGOnline   string     `json:"tcgOnline,omitempty"`
	ReleaseDate string     `json:"releaseDate"`
	Legal       Legal      `json:"legal"`
	Cards       CardList   `json:"cards"`
}

// IsEmpty reports whether TCGdex returned a placeholder set
func (s *Set) IsEmpty() bool {
	return s == nil || (s.ID == "" && s.Name == "")
}

// Brief returns the list projection of the set
func (s *Set) Brief() SetBrief {
	return SetBrief{
		ID:     s.ID,
		Name:   s.Name,
		Logo:   s.Logo,
		Symbol: s.Symbol,
		CardCount: CardCountBrief{
			Total:    s.CardCount.Total,
			Official: s.CardCount.Official,
		},
	}
}

// SetList is a list of brief sets
type SetList []SetBrief

// IsEmpty reports whether the list holds no set
func (l SetList) IsEmpty() bool {
	return len(l) == 0
}

// SerieBrief is the serie projection returned by list endpoints
type SerieBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Serie is a detailed serie record
type Serie struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Logo string  `json:"logo,omitempty"`
	Sets SetList `json:"sets"`
}

// IsEmpty reports whether TCGdex returned a placeholder serie
func (s *Serie) IsEmpty() bool {
	return s == nil || (s.ID == "" && s.Name == "")
}

// SerieList is a list of brief series
type SerieList []SerieBrief

// IsEmpty reports whether the list holds no serie
func (l SerieList) IsEmpty() bool {
	return len(l) == 0
}

// splitCardID splits "swsh3-136" into "swsh3" and "136" at the last dash
func splitCardID(id string) (string, string, bool) {
	i := strings.LastIndex(id, "-")
	if i <= 0 || i == len(id)-1 {
		return "", "", false
	}
	return id[:i], id[i+1:], true
}

func imageURL(base, quality, ext string) string {
	if base == "" {
		return ""
	}
	if quality == "" {
		quality = "high"
	}
	if ext == "" {
		ext = "png"
	}
	return fmt.Sprintf("%s/%s.%s", base, quality, ext)
}
