package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

// Boundary selects how the end of a value is found.
type Boundary int

const (
	// BoundaryNone takes the longest prefix matching the value shape.
	BoundaryNone Boundary = iota

	// BoundaryLabel takes the shortest value that is followed by the end of
	// the text or by the next label, after dropping a trailing noise token.
	BoundaryLabel
)

// Kind is the type a captured value is converted to.
type Kind int

const (
	// KindText stores the trimmed capture.
	KindText Kind = iota

	// KindInt parses the capture as a decimal integer.
	KindInt

	// KindDate parses the capture as a calendar date and stores YYYY-MM-DD.
	KindDate
)

// Rule describes how one field is found.
type Rule struct {
	// Field is the record attribute the rule fills.
	Field domain.Field

	// Label matches the label and its separator, including any whitespace
	// after it. Empty means the value is searched for anywhere in the text.
	Label string

	// Heading matches the printed label of an unlabelled field. It is only
	// used as an extra boundary for other fields.
	Heading string

	// Value is the shape of the value.
	Value string

	// Boundary selects how the end of the value is found.
	Boundary Boundary

	// Kind is the type the value is converted to.
	Kind Kind
}

// Shared value shapes.
const (
	shapeFreeText = `(?s:.*)`
	shapeWords    = `[A-Za-z]+(?:\s+[A-Za-z]+){0,3}`
	shapeAddress  = `[A-Za-z0-9 ,]+`
	shapeSegment  = `[A-Za-z]+(?:\s+[A-Za-z]+)*`
	shapeSegments = shapeSegment + `(?:(?:,|\s*-|\s*\(and\))\s*` + shapeSegment + `){0,3}`
	shapeAge      = `\d{1,3}`
	shapeEmail    = `[\w-](?:[\w.-]*[\w-])?@\w+(?:\.\w+\.\w{2,}|\.\w{2,})`
	shapePhone    = `\+?\d{1,3}(?:[-.\s]?\d{3,4}){2,3}`
	shapeDate     = `\d{1,2}[-/]\d{1,2}[-/]\d{4}|\d{4}[-/]\d{1,2}[-/]\d{1,2}`
)

// label builds a case-insensitive label pattern that must start at a word
// boundary and be followed by one of seps.
func label(name, seps string) string {
	return `\b(?i:` + name + `)[` + seps + `]\s*`
}

// DefaultRules returns the rule table for intake forms.
func DefaultRules() []Rule {
	return []Rule{
		{Field: domain.FieldName, Label: label(`name`, ":"), Value: shapeWords, Boundary: BoundaryLabel},
		{Field: domain.FieldAge, Label: label(`age`, ":"), Value: shapeAge, Boundary: BoundaryNone, Kind: KindInt},
		{Field: domain.FieldAddress, Label: label(`address`, ":"), Value: shapeAddress, Boundary: BoundaryLabel},
		{Field: domain.FieldHistory, Label: label(`history`, ":-"), Value: shapeFreeText, Boundary: BoundaryLabel},
		{Field: domain.FieldComplaint, Label: label(`complaint`, ":-"), Value: shapeFreeText, Boundary: BoundaryLabel},
		{Field: domain.FieldInsurance, Label: label(`insurance`, ":-"), Value: shapeFreeText, Boundary: BoundaryLabel},
		{Field: domain.FieldDiagnosis, Label: label(`diagnosis`, ":-"), Value: shapeSegments, Boundary: BoundaryLabel},
		{Field: domain.FieldProcedure, Label: label(`(?:medical\s*)?procedure`, ":-"), Value: shapeSegments, Boundary: BoundaryLabel},
		{Field: domain.FieldMedications, Label: label(`medications?`, ":-"), Value: shapeSegments, Boundary: BoundaryLabel},
		{Field: domain.FieldEmail, Heading: `E-?mail`, Value: shapeEmail},
		{Field: domain.FieldPhone, Heading: `Phone`, Value: shapePhone},
		{Field: domain.FieldVisitDate, Heading: `[Vv]isit\s+[Dd]ate`, Value: shapeDate, Kind: KindDate},
	}
}

// noise matches the stray "Medical" token OCR leaves at the end of a value.
var noise = regexp.MustCompile(`^\s+Medical`)

// genericLabel is the shape of any label: a capitalised word and a separator.
const genericLabel = `[A-Z][a-z]*[:-]`

// compiledRule is a Rule with its patterns compiled.
type compiledRule struct {
	Rule
	label *regexp.Regexp
	value *regexp.Regexp
}

// compile compiles rules and the boundary pattern they share.
func compile(rules []Rule) ([]compiledRule, *regexp.Regexp, error) {
	compiled := make([]compiledRule, 0, len(rules))
	headings := []string{genericLabel}

	for _, r := range rules {
		if r.Field == "" || r.Value == "" {
			return nil, nil, fmt.Errorf("%w: rule needs a field and a value shape", domain.ErrInvalidInput)
		}

		c := compiledRule{Rule: r}
		var err error

		switch {
		case r.Label == "":
			c.value, err = regexp.Compile(r.Value)
		case r.Boundary == BoundaryLabel:
			c.value, err = regexp.Compile(`^(?:` + r.Value + `)$`)
		default:
			c.value, err = regexp.Compile(`^(?:` + r.Value + `)`)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("compiling value for %s: %w", r.Field, err)
		}

		if r.Label != "" {
			if c.label, err = regexp.Compile(r.Label); err != nil {
				return nil, nil, fmt.Errorf("compiling label for %s: %w", r.Field, err)
			}
		}

		if r.Heading != "" {
			headings = append(headings, `(?:`+r.Heading+`)[:-]`)
		}
		compiled = append(compiled, c)
	}

	boundary, err := regexp.Compile(`^\s*(?:` + strings.Join(headings, "|") + `|$)`)
	if err != nil {
		return nil, nil, fmt.Errorf("compiling boundary: %w", err)
	}
	return compiled, boundary, nil
}
