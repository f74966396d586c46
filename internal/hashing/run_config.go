package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/mmrzaf/mocker/internal/domain"
)

type runConfigHashPayload struct {
	ConfigHash string `json:"config_hash"`
	Format     string `json:"format"`
	RowCount   int    `json:"row_count"`
	Seed       *int64 `json:"seed,omitempty"`
}

// HashRunConfig fingerprints everything that determines the output of a
// seeded run. A nil seed marks an unseeded run.
func HashRunConfig(cfg *domain.Config, format string, rowCount int, seed *int64) (string, error) {
	ch, err := HashConfig(cfg)
	if err != nil {
		return "", err
	}

	p := runConfigHashPayload{
		ConfigHash: ch,
		Format:     format,
		RowCount:   rowCount,
		Seed:       seed,
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
