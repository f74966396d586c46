package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/mmrzaf/mocker/internal/domain"
)

// HashConfig fingerprints a parsed configuration. Formatting, comments and
// separators in the source text do not affect the result.
func HashConfig(cfg *domain.Config) (string, error) {
	data, err := json.Marshal(canonicalizeConfig(cfg))
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

func canonicalizeConfig(cfg *domain.Config) map[string]interface{} {
	tables := make([]map[string]interface{}, len(cfg.Tables))
	for i, table := range cfg.Tables {
		columns := make([]map[string]interface{}, len(table.Columns))
		for j, col := range table.Columns {
			colMap := map[string]interface{}{
				"name":     col.Name,
				"type":     col.Type.String(),
				"provider": canonicalizeCall(col.Provider.Name, col.Provider.Arguments),
			}
			if len(col.Constraints) > 0 {
				constraints := make([]map[string]interface{}, len(col.Constraints))
				for k, c := range col.Constraints {
					constraints[k] = canonicalizeCall(c.Name, c.Arguments)
				}
				colMap["constraints"] = constraints
			}
			columns[j] = colMap
		}

		tables[i] = map[string]interface{}{
			"name":    table.Name,
			"columns": columns,
		}
	}

	return map[string]interface{}{
		"tables": tables,
	}
}

func canonicalizeCall(name string, args []domain.Argument) map[string]interface{} {
	result := map[string]interface{}{
		"name": name,
	}
	if len(args) > 0 {
		canon := make([]map[string]interface{}, len(args))
		for i, arg := range args {
			canon[i] = map[string]interface{}{
				"kind":  int(arg.Kind),
				"value": domain.CellValueFromArgument(arg).Interface(),
			}
		}
		result["args"] = canon
	}
	return result
}
