package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// simpleTerm matches one "field<op>value" term, e.g. "hp>=100" or "name=pika"
var simpleTerm = regexp.MustCompile(`^([A-Za-z][A-Za-z.]*)(!=|>=|<=|=|>|<)([^=<>!].*|)$`)

// fieldKind tells how a simple term compares its field
type fieldKind int

const (
	kindText fieldKind = iota
	kindExact
	kindNumber
	kindList
	kindBool
)

type simpleField struct {
	name string
	kind fieldKind
}

// simpleFields maps the lowercase names accepted in simple terms to record
// variables
var simpleFields = map[string]simpleField{
	"id":             {"ID", kindExact},
	"localid":        {"LocalID", kindExact},
	"name":           {"Name", kindText},
	"category":       {"Category", kindText},
	"illustrator":    {"Illustrator", kindText},
	"rarity":         {"Rarity", kindText},
	"stage":          {"Stage", kindText},
	"evolvefrom":     {"EvolveFrom", kindText},
	"trainertype":    {"TrainerType", kindText},
	"energytype":     {"EnergyType", kindText},
	"regulationmark": {"RegulationMark", kindExact},
	"set":            {"SetID", kindExact},
	"set.id":         {"SetID", kindExact},
	"setname":        {"SetName", kindText},
	"set.name":       {"SetName", kindText},
	"serie":          {"SerieID", kindExact},
	"serie.id":       {"SerieID", kindExact},
	"hp":             {"HP", kindNumber},
	"retreat":        {"Retreat", kindNumber},
	"total":          {"Total", kindNumber},
	"official":       {"Official", kindNumber},
	"types":          {"Types", kindList},
	"attacks":        {"Attacks", kindList},
	"abilities":      {"Abilities", kindList},
	"standard":       {"Standard", kindBool},
	"expanded":       {"Expanded", kindBool},
}

// IsSimpleFilter reports whether filter only holds simple terms separated by
// whitespace or "&"
func IsSimpleFilter(filter string) bool {
	terms := splitSimpleTerms(filter)
	if len(terms) == 0 {
		return false
	}
	for _, term := range terms {
		m := simpleTerm.FindStringSubmatch(term)
		if m == nil {
			return false
		}
		if _, ok := simpleFields[strings.ToLower(m[1])]; !ok {
			return false
		}
	}
	return true
}

// ConvertSimpleFilter converts simple "field=value" terms to an expr
// expression. Terms are combined with "and". Text fields match when they
// contain the value, ignoring case, unless the value is double quoted: a
// quoted value must equal the whole field. Other fields must be equal.
func ConvertSimpleFilter(filter string) (string, error) {
	terms := splitSimpleTerms(filter)
	if len(terms) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		part, err := convertTerm(term)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " and "), nil
}

func splitSimpleTerms(filter string) []string {
	return strings.FieldsFunc(filter, func(r rune) bool {
		return r == '&' || r == ' ' || r == '\t' || r == '\n'
	})
}

func convertTerm(term string) (string, error) {
	m := simpleTerm.FindStringSubmatch(term)
	if m == nil {
		return "", fmt.Errorf("invalid filter term %q", term)
	}
	field, ok := simpleFields[strings.ToLower(m[1])]
	if !ok {
		return "", fmt.Errorf("unknown filter field %q", m[1])
	}
	op := m[2]
	value, quoted := unquote(m[3])

	switch field.kind {
	case kindNumber:
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", fmt.Errorf("field %s needs a number, got %q", m[1], value)
		}
		if op == "=" {
			op = "=="
		}
		return fmt.Sprintf("%s %s %d", field.name, op, n), nil

	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("field %s needs true or false, got %q", m[1], value)
		}
		switch op {
		case "=":
			return fmt.Sprintf("%s == %t", field.name, b), nil
		case "!=":
			return fmt.Sprintf("%s != %t", field.name, b), nil
		}

	case kindList:
		match := fmt.Sprintf("any(%s, {lower(#) == lower(%s)})", field.name, strconv.Quote(value))
		switch op {
		case "=":
			return match, nil
		case "!=":
			return "not " + match, nil
		}

	case kindExact:
		return convertExact(field, op, value, m[1])

	case kindText:
		if quoted {
			return convertExact(field, op, value, m[1])
		}
		switch op {
		case "=":
			return fmt.Sprintf("containsFold(%s, %s)", field.name, strconv.Quote(value)), nil
		case "!=":
			return fmt.Sprintf("not containsFold(%s, %s)", field.name, strconv.Quote(value)), nil
		}
	}

	return "", fmt.Errorf("operator %s is not supported for field %s", op, m[1])
}

func convertExact(field simpleField, op, value, name string) (string, error) {
	switch op {
	case "=":
		return fmt.Sprintf("equalFold(%s, %s)", field.name, strconv.Quote(value)), nil
	case "!=":
		return fmt.Sprintf("not equalFold(%s, %s)", field.name, strconv.Quote(value)), nil
	}
	return "", fmt.Errorf("operator %s is not supported for field %s", op, name)
}

// unquote strips one pair of surrounding double quotes from a term value
func unquote(value string) (string, bool) {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return value, false
	}
	if s, err := strconv.Unquote(value); err == nil {
		return s, true
	}
	return value[1 : len(value)-1], true
}
