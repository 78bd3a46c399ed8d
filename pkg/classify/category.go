package classify

import "strings"

const (
	Company     = "company"
	Agriculture = "agriculture"
	Oil         = "oil"
	Banking     = "banking"
	Health      = "health"
	Policy      = "policy"
	Other       = "other"
)

// Rule maps a category label to the keywords that select it.
type Rule struct {
	Label    string
	Keywords []string
}

// DefaultRules is evaluated top to bottom; the first rule with a matching
// keyword wins, so a title mentioning both Apple and Oil is a company story.
var DefaultRules = []Rule{
	{Label: Company, Keywords: []string{"Apple", "Amazon", "Microsoft", "Tesla", "Google", "Meta"}},
	{Label: Agriculture, Keywords: []string{"Agriculture", "Farming", "Crops", "Fertilizers", "Commodities"}},
	{Label: Oil, Keywords: []string{"Oil", "Petroleum", "Gas", "Energy", "Exxon", "Shell"}},
	{Label: Banking, Keywords: []string{"Bank", "Finance", "Investment", "Credit", "JP Morgan", "Goldman Sachs"}},
	{Label: Health, Keywords: []string{"Health", "Pharmaceutical", "Hospitals", "Biotechnology", "Pfizer", "Moderna", "Johnson & Johnson"}},
	{Label: Policy, Keywords: []string{"Government", "Policy", "Regulation", "Law", "President", "Minister"}},
}

type compiledRule struct {
	label    string
	keywords []string
}

// Categorizer assigns a topic label by case-insensitive substring matching.
// It is immutable after construction and safe for concurrent use.
type Categorizer struct {
	rules    []compiledRule
	fallback string
}

func NewCategorizer(rules []Rule) *Categorizer {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		keywords := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k == "" {
				continue
			}
			keywords = append(keywords, strings.ToLower(k))
		}
		compiled = append(compiled, compiledRule{label: r.Label, keywords: keywords})
	}

	return &Categorizer{rules: compiled, fallback: Other}
}

func Default() *Categorizer {
	return NewCategorizer(DefaultRules)
}

func (c *Categorizer) Categorize(text string) string {
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				return r.label
			}
		}
	}
	return c.fallback
}

// Labels lists every label the categorizer can return, in evaluation order.
func (c *Categorizer) Labels() []string {
	labels := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		labels = append(labels, r.label)
	}
	return append(labels, c.fallback)
}
