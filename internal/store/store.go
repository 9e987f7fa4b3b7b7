// Package store loads and saves tax rule sets as YAML files.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/taxcalc/internal/fileutils"
	"fjacquet/taxcalc/internal/logging"
	"fjacquet/taxcalc/internal/models"
	"fjacquet/taxcalc/internal/taxengine"
	"fjacquet/taxcalc/internal/taxerror"
	"fjacquet/taxcalc/internal/validation"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RuleSource supplies the rule set the calculator runs against.
type RuleSource interface {
	Load() (*taxengine.RuleSet, error)
}

// BracketFile is the on-disk form of one bracket. An empty UpperBound marks the
// unbounded top bracket.
type BracketFile struct {
	UpperBound string `yaml:"upper_bound,omitempty" json:"upper_bound,omitempty"`
	Rate       string `yaml:"rate" json:"rate"`
}

// RuleSetFile is the on-disk and wire form of a rule set. Amounts and rates are decimal strings.
type RuleSetFile struct {
	Name                  string        `yaml:"name" json:"name"`
	BusinessRate          string        `yaml:"business_rate" json:"business_rate"`
	VATRate               string        `yaml:"vat_rate" json:"vat_rate"`
	AnnualIncomeExemption bool          `yaml:"annual_income_exemption" json:"annual_income_exemption"`
	Brackets              []BracketFile `yaml:"brackets" json:"brackets"`
}

// RuleStore reads and writes rule-set files.
type RuleStore struct {
	Path   string
	logger logging.Logger
}

// NewRuleStore creates a store for path. An empty path means the built-in rules.
func NewRuleStore(path string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &RuleStore{
		Path:   path,
		logger: logger,
	}
}

// FindRulesFile looks for a rules file in the standard locations: as given, under
// ./config, then under $HOME/.config/taxcalc.
func (s *RuleStore) FindRulesFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "taxcalc", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load returns the rule set stored at Path, or the built-in rule set when Path is empty.
func (s *RuleStore) Load() (*taxengine.RuleSet, error) {
	if s.Path == "" {
		s.logger.Debug("Using built-in rule set", logging.F(logging.FieldRuleSet, taxengine.DefaultRuleSetName))
		return taxengine.DefaultRuleSet(), nil
	}

	filePath, err := s.FindRulesFile(s.Path)
	if err != nil {
		return nil, &taxerror.RuleFileError{Path: s.Path, Err: err}
	}

	s.checkPermissions(filePath)

	data, err := os.ReadFile(filePath) // #nosec G304 -- rule file path is user configuration
	if err != nil {
		return nil, &taxerror.RuleFileError{Path: filePath, Err: err}
	}

	rules, err := ParseRuleSet(data)
	if err != nil {
		return nil, &taxerror.RuleFileError{Path: filePath, Err: err}
	}

	s.logger.Info("Loaded rule set",
		logging.F(logging.FieldRuleSet, rules.Name),
		logging.F(logging.FieldRulesFile, filePath),
		logging.F(logging.FieldCount, rules.Brackets.Len()))
	return rules, nil
}

// Save writes rules to Path, creating parent directories as needed.
func (s *RuleStore) Save(rules *taxengine.RuleSet) error {
	if s.Path == "" {
		return &taxerror.RuleFileError{Path: s.Path, Err: errors.New("no rules file path configured")}
	}

	data, err := MarshalRuleSet(rules)
	if err != nil {
		return &taxerror.RuleFileError{Path: s.Path, Err: err}
	}

	if err := fileutils.WriteFile(s.Path, data, models.PermissionConfigFile); err != nil {
		return &taxerror.RuleFileError{Path: s.Path, Err: err}
	}

	s.logger.Info("Saved rule set",
		logging.F(logging.FieldRuleSet, rules.Name),
		logging.F(logging.FieldRulesFile, s.Path))
	return nil
}

func (s *RuleStore) checkPermissions(filePath string) {
	info, err := os.Stat(filePath)
	if err != nil {
		return
	}
	if err := validation.IsValidFilePermissions(info.Mode()); err != nil {
		s.logger.Warn("Rule file is readable by other users",
			logging.F(logging.FieldRulesFile, filePath),
			logging.F(logging.FieldError, err.Error()))
	}
}

// ParseRuleSet decodes and validates a YAML rule set.
func ParseRuleSet(data []byte) (*taxengine.RuleSet, error) {
	var file RuleSetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing rule set: %w", err)
	}
	return file.ToRuleSet()
}

// MarshalRuleSet encodes rules in the file schema.
func MarshalRuleSet(rules *taxengine.RuleSet) ([]byte, error) {
	if rules == nil {
		return nil, errors.New("cannot marshal nil rule set")
	}
	return yaml.Marshal(FromRuleSet(rules))
}

// ToRuleSet converts the file form into a validated RuleSet.
func (f RuleSetFile) ToRuleSet() (*taxengine.RuleSet, error) {
	business, err := parseDecimal("business_rate", f.BusinessRate)
	if err != nil {
		return nil, err
	}
	vat, err := parseDecimal("vat_rate", f.VATRate)
	if err != nil {
		return nil, err
	}

	brackets := make([]taxengine.TaxBracket, 0, len(f.Brackets))
	for i, b := range f.Brackets {
		rate, err := parseDecimal(fmt.Sprintf("brackets[%d].rate", i), b.Rate)
		if err != nil {
			return nil, err
		}
		if b.UpperBound == "" {
			brackets = append(brackets, taxengine.Open(rate))
			continue
		}
		upper, err := parseDecimal(fmt.Sprintf("brackets[%d].upper_bound", i), b.UpperBound)
		if err != nil {
			return nil, err
		}
		brackets = append(brackets, taxengine.Bounded(upper, rate))
	}

	table, err := taxengine.NewBracketTable(brackets)
	if err != nil {
		return nil, err
	}

	name := f.Name
	if name == "" {
		name = "unnamed"
	}
	rules := &taxengine.RuleSet{
		Name:                  name,
		Brackets:              table,
		BusinessRate:          business,
		VATRate:               vat,
		AnnualIncomeExemption: f.AnnualIncomeExemption,
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// FromRuleSet converts a RuleSet into its file form.
func FromRuleSet(rules *taxengine.RuleSet) RuleSetFile {
	file := RuleSetFile{
		Name:                  rules.Name,
		BusinessRate:          rules.BusinessRate.String(),
		VATRate:               rules.VATRate.String(),
		AnnualIncomeExemption: rules.AnnualIncomeExemption,
	}
	for _, b := range rules.Brackets.Brackets() {
		entry := BracketFile{Rate: b.Rate.String()}
		if !b.Unbounded {
			entry.UpperBound = b.UpperBound.String()
		}
		file.Brackets = append(file.Brackets, entry)
	}
	return file
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, fmt.Errorf("%s is required", field)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s '%s': %w", field, value, err)
	}
	return d, nil
}
