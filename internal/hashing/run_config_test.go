package hashing

import (
	"testing"

	"github.com/mmrzaf/mocker/internal/domain"
	"github.com/mmrzaf/mocker/internal/parser"
)

func sampleConfig() *domain.Config {
	return &domain.Config{
		Tables: []domain.Table{
			{
				Name: "users",
				Columns: []domain.Column{
					{
						Name:     "id",
						Type:     domain.IntType,
						Provider: domain.ProviderSpec{Name: "number", Arguments: []domain.Argument{domain.IntArg(1), domain.IntArg(10)}},
					},
				},
			},
		},
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestHashRunConfig_IncludesFormatSeedAndRowCount(t *testing.T) {
	cfg := sampleConfig()

	h1, err := HashRunConfig(cfg, "tsql", 10, int64Ptr(11))
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashRunConfig(cfg, "csv", 10, int64Ptr(11))
	if err != nil {
		t.Fatal(err)
	}
	h3, err := HashRunConfig(cfg, "tsql", 20, int64Ptr(11))
	if err != nil {
		t.Fatal(err)
	}
	h4, err := HashRunConfig(cfg, "tsql", 10, int64Ptr(12))
	if err != nil {
		t.Fatal(err)
	}
	h5, err := HashRunConfig(cfg, "tsql", 10, nil)
	if err != nil {
		t.Fatal(err)
	}

	if h1 == h2 {
		t.Fatal("expected format to affect hash")
	}
	if h1 == h3 {
		t.Fatal("expected row count to affect hash")
	}
	if h1 == h4 {
		t.Fatal("expected seed to affect hash")
	}
	if h1 == h5 {
		t.Fatal("expected a missing seed to affect hash")
	}
}

func TestHashConfig_IgnoresFormatting(t *testing.T) {
	a, err := parser.Parse("table users { id int #number(1, 10) }")
	if err != nil {
		t.Fatal(err)
	}
	b, err := parser.Parse("\n\ntable   users\n{\n  id    int   #number( 1,10 ),\n}\n")
	if err != nil {
		t.Fatal(err)
	}

	ha, err := HashConfig(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := HashConfig(b)
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Fatalf("expected equal hashes, got %s and %s", ha, hb)
	}

	hs, err := HashConfig(sampleConfig())
	if err != nil {
		t.Fatal(err)
	}
	if ha != hs {
		t.Fatal("expected parsed config to hash like the equivalent literal")
	}
}

func TestHashConfig_ArgumentKindMatters(t *testing.T) {
	intCfg := sampleConfig()
	strCfg := sampleConfig()
	strCfg.Tables[0].Columns[0].Provider.Arguments[0] = domain.StringArg("1")

	hi, err := HashConfig(intCfg)
	if err != nil {
		t.Fatal(err)
	}
	hs, err := HashConfig(strCfg)
	if err != nil {
		t.Fatal(err)
	}
	if hi == hs {
		t.Fatal("expected argument kind to affect hash")
	}
}
