package extractor

import (
	"regexp"
	"strconv"

	"github.com/custodia-labs/dentract/internal/core/domain"
	"github.com/custodia-labs/dentract/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.FieldExtractor = (*Extractor)(nil)

// Extractor applies a rule table to normalised text.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	rules    []compiledRule
	boundary *regexp.Regexp
	dayFirst bool
}

// Option configures an Extractor.
type Option func(*config)

type config struct {
	rules    []Rule
	dayFirst bool
}

// WithRules replaces the default rule table.
func WithRules(rules []Rule) Option {
	return func(c *config) {
		c.rules = rules
	}
}

// WithDayFirst sets how ambiguous NN-NN-YYYY dates are read.
// The default is day-month-year.
func WithDayFirst(dayFirst bool) Option {
	return func(c *config) {
		c.dayFirst = dayFirst
	}
}

// New creates an extractor. Without options it uses DefaultRules and reads
// ambiguous dates day first.
func New(opts ...Option) (*Extractor, error) {
	cfg := config{rules: DefaultRules(), dayFirst: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	rules, boundary, err := compile(cfg.rules)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		rules:    rules,
		boundary: boundary,
		dayFirst: cfg.dayFirst,
	}, nil
}

// Fields returns the fields the extractor looks for, in table order.
func (e *Extractor) Fields() []domain.Field {
	fields := make([]domain.Field, len(e.rules))
	for i := range e.rules {
		fields[i] = e.rules[i].Field
	}
	return fields
}

// Extract builds a record from normalised text. Fields that are not found
// stay nil. A date-shaped token that is not a calendar date fails the whole
// extraction with domain.ErrMalformedDate.
func (e *Extractor) Extract(text string) (domain.PatientRecord, error) {
	var record domain.PatientRecord

	for i := range e.rules {
		rule := &e.rules[i]
		raw, ok := rule.find(text, e.boundary)
		if !ok {
			continue
		}
		if err := e.assign(&record, rule, raw); err != nil {
			return domain.PatientRecord{}, err
		}
	}

	return record, nil
}

// assign converts a capture and stores it on the record.
func (e *Extractor) assign(record *domain.PatientRecord, rule *compiledRule, raw string) error {
	value := clean(raw)

	switch rule.Kind {
	case KindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			// Only reachable with a custom value shape.
			return nil
		}
		if rule.Field == domain.FieldAge {
			record.Age = &n
			return nil
		}
		value = strconv.Itoa(n)

	case KindDate:
		date, err := parseDate(value, e.dayFirst)
		if err != nil {
			return err
		}
		value = date
	}

	if slot := record.Text(rule.Field); slot != nil {
		*slot = &value
	}
	return nil
}
