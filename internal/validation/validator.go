package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mmrzaf/mocker/internal/domain"
	"github.com/mmrzaf/mocker/internal/registry"
)

type Validator struct {
	providers  *registry.ProviderRegistry
	generators *registry.GeneratorRegistry
}

func NewValidator(providers *registry.ProviderRegistry, generators *registry.GeneratorRegistry) *Validator {
	return &Validator{providers: providers, generators: generators}
}

// identifier validation: allow simple SQL identifiers only (prevents injection via table/column names).
var (
	identRe       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reservedWords = map[string]struct{}{
		"add": {}, "all": {}, "alter": {}, "and": {}, "any": {}, "as": {},
		"asc": {}, "between": {}, "by": {}, "case": {}, "check": {},
		"column": {}, "constraint": {}, "create": {}, "cross": {}, "current_date": {},
		"current_time": {}, "current_timestamp": {}, "database": {}, "default": {}, "delete": {},
		"desc": {}, "distinct": {}, "do": {}, "drop": {}, "else": {},
		"end": {}, "except": {}, "exists": {}, "false": {}, "for": {},
		"foreign": {}, "from": {}, "full": {}, "grant": {}, "group": {},
		"having": {}, "in": {}, "index": {}, "inner": {}, "insert": {},
		"intersect": {}, "into": {}, "is": {}, "join": {}, "key": {},
		"left": {}, "like": {}, "limit": {}, "natural": {}, "not": {},
		"null": {}, "offset": {}, "on": {}, "or": {}, "order": {},
		"outer": {}, "primary": {}, "references": {}, "returning": {}, "revoke": {},
		"right": {}, "schema": {}, "select": {}, "set": {}, "table": {},
		"then": {}, "to": {}, "true": {}, "truncate": {}, "union": {},
		"unique": {}, "update": {}, "user": {}, "using": {}, "values": {},
		"view": {}, "when": {}, "where": {}, "with": {},
	}
)

func IsValidIdentifier(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if !identRe.MatchString(s) {
		return false
	}
	if _, ok := reservedWords[strings.ToLower(s)]; ok {
		return false
	}
	return true
}

// ValidateConfig checks that every provider exists and accepts its
// arguments. Problems that do not stop generation are returned as warnings.
func (v *Validator) ValidateConfig(cfg *domain.Config) ([]string, error) {
	var warnings []string
	if len(cfg.Tables) == 0 {
		warnings = append(warnings, "configuration declares no tables")
	}

	tableNames := make(map[string]bool)
	for _, table := range cfg.Tables {
		if tableNames[table.Name] {
			warnings = append(warnings, fmt.Sprintf("duplicate table name: %s", table.Name))
		}
		tableNames[table.Name] = true

		columnNames := make(map[string]bool)
		for _, col := range table.Columns {
			if columnNames[col.Name] {
				warnings = append(warnings, fmt.Sprintf("table '%s': duplicate column name: %s", table.Name, col.Name))
			}
			columnNames[col.Name] = true

			if err := v.validateColumn(&col); err != nil {
				return warnings, fmt.Errorf("table '%s', column '%s': %w", table.Name, col.Name, err)
			}
		}
	}
	return warnings, nil
}

func (v *Validator) validateColumn(col *domain.Column) error {
	if !v.providers.Has(col.Provider.Name) {
		return fmt.Errorf("provider not found: %s", col.Provider.Name)
	}

	p, err := v.providers.Get(col.Provider.Name)
	if err != nil {
		return err
	}
	if err := p.Reset(col.Provider.Arguments); err != nil {
		return fmt.Errorf("provider '%s': %w", col.Provider.Name, err)
	}
	return nil
}

func (v *Validator) ValidateFormat(format string) error {
	if format == "" {
		return errors.New("output format is required")
	}
	if !v.generators.Has(format) {
		return fmt.Errorf("unsupported output format: %s (available: %s)", format, strings.Join(v.generators.Names(), ", "))
	}
	return nil
}

// ValidateIdentifiers checks table and column names before they are
// interpolated into SQL.
func ValidateIdentifiers(cfg *domain.Config) error {
	for _, table := range cfg.Tables {
		if !IsValidIdentifier(table.Name) {
			return fmt.Errorf("invalid table identifier: %s", table.Name)
		}
		for _, col := range table.Columns {
			if !IsValidIdentifier(col.Name) {
				return fmt.Errorf("table '%s': invalid column identifier: %s", table.Name, col.Name)
			}
		}
	}
	return nil
}

const (
	ModeCreate   = "create"
	ModeTruncate = "truncate"
	ModeAppend   = "append"
)

func IsValidMode(mode string) bool {
	switch mode {
	case ModeCreate, ModeTruncate, ModeAppend:
		return true
	default:
		return false
	}
}
