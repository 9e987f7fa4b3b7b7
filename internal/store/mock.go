package store

import (
	"fjacquet/taxcalc/internal/taxengine"
)

// MockRuleSource is a RuleSource for tests.
type MockRuleSource struct {
	Rules     *taxengine.RuleSet
	LoadError error
	Calls     int
}

// Load returns the configured rules or error.
func (m *MockRuleSource) Load() (*taxengine.RuleSet, error) {
	m.Calls++
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	return m.Rules, nil
}
