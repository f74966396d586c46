package app

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	mrand "math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mmrzaf/mocker/internal/domain"
	"github.com/mmrzaf/mocker/internal/exec"
	"github.com/mmrzaf/mocker/internal/generators"
	"github.com/mmrzaf/mocker/internal/hashing"
	"github.com/mmrzaf/mocker/internal/infra/repos/runs"
	"github.com/mmrzaf/mocker/internal/infra/targets"
	"github.com/mmrzaf/mocker/internal/logging"
	"github.com/mmrzaf/mocker/internal/parser"
	"github.com/mmrzaf/mocker/internal/providers"
	"github.com/mmrzaf/mocker/internal/registry"
	"github.com/mmrzaf/mocker/internal/validation"
)

// StdoutOutput as the output directory writes every table to the request's
// Stdout writer.
const StdoutOutput = "-"

type RunRequest struct {
	ConfigPath   string
	RowCount     int
	WordLists    string
	Seed         *int64
	LenientTypes bool

	// Format and Output are used by Generate.
	Format string
	Output string
	Stdout io.Writer

	// Driver, DSN, Schema and Mode are used by Load.
	Driver string
	DSN    string
	Schema string
	Mode   string
}

type Run struct {
	ID          string          `json:"id"`
	ConfigHash  string          `json:"config_hash"`
	RunHash     string          `json:"run_hash"`
	Seed        int64           `json:"seed"`
	Tables      int             `json:"tables"`
	TotalRows   int64           `json:"total_rows"`
	Warnings    []string        `json:"warnings,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at"`
	LoadStats   *exec.LoadStats `json:"load_stats,omitempty"`
}

type RunService struct {
	logger  *logging.Logger
	history runs.Repository
}

// NewRunService creates the service. history may be nil, in which case runs
// are not recorded.
func NewRunService(logger *logging.Logger, history runs.Repository) *RunService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &RunService{logger: logger.WithComponent("run"), history: history}
}

// Check parses and validates a configuration without generating data.
func (s *RunService) Check(path, wordLists string) (*domain.Config, []string, error) {
	cfg, err := parser.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}

	provReg := registry.DefaultProviderRegistry(providers.Context{RowCount: 1, WordListDir: wordLists})
	val := validation.NewValidator(provReg, registry.DefaultGeneratorRegistry())
	warnings, err := val.ValidateConfig(cfg)
	return cfg, warnings, err
}

// Generate writes rowCount rows per table in the requested format.
func (s *RunService) Generate(req *RunRequest) (*Run, error) {
	startedAt := time.Now()
	seed := resolveSeed(req)
	run, err := s.generate(req, seed)
	s.record(domain.RunKindGenerate, req, req.Format, seed, startedAt, run, err)
	return run, err
}

func (s *RunService) generate(req *RunRequest, seed int64) (*Run, error) {
	p, err := s.prepare(req, seed)
	if err != nil {
		return nil, err
	}
	if err := p.validator.ValidateFormat(req.Format); err != nil {
		return nil, err
	}

	data, err := p.executor.Generate(p.cfg, req.RowCount)
	if err != nil {
		return nil, err
	}

	open := exec.DirSink(req.Output, generators.Extension(req.Format))
	if req.Output == StdoutOutput {
		out := req.Stdout
		if out == nil {
			out = os.Stdout
		}
		open = exec.WriterSink(out)
	}
	if err := p.executor.Write(data, req.Format, open); err != nil {
		return nil, err
	}

	return s.finish(p, req, data, nil, req.Format)
}

// Load inserts rowCount rows per table into a database.
func (s *RunService) Load(req *RunRequest) (*Run, error) {
	startedAt := time.Now()
	seed := resolveSeed(req)
	run, err := s.load(req, seed)
	s.record(domain.RunKindLoad, req, req.Driver, seed, startedAt, run, err)
	return run, err
}

func (s *RunService) load(req *RunRequest, seed int64) (*Run, error) {
	p, err := s.prepare(req, seed)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateIdentifiers(p.cfg); err != nil {
		return nil, err
	}
	mode := req.Mode
	if mode == "" {
		mode = validation.ModeCreate
	}
	if !validation.IsValidMode(mode) {
		return nil, fmt.Errorf("invalid mode: %s", mode)
	}

	target, err := targets.New(req.Driver, req.DSN, req.Schema)
	if err != nil {
		return nil, err
	}

	data, err := p.executor.Generate(p.cfg, req.RowCount)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("load.start", map[string]any{
		"run_id": p.id,
		"driver": req.Driver,
		"dsn":    targets.RedactDSN(req.Driver, req.DSN),
		"mode":   mode,
	})
	stats, err := p.executor.Load(data, target, mode)
	if err != nil {
		return nil, err
	}

	return s.finish(p, req, data, stats, req.Driver)
}

type preparedRun struct {
	id        string
	cfg       *domain.Config
	seed      int64
	warnings  []string
	validator *validation.Validator
	executor  *exec.Executor
	startedAt time.Time
}

func (s *RunService) prepare(req *RunRequest, seed int64) (*preparedRun, error) {
	if req.RowCount <= 0 {
		return nil, fmt.Errorf("row count must be a positive integer, got %d", req.RowCount)
	}

	startedAt := time.Now()
	cfg, err := parser.ParseFile(req.ConfigPath)
	if err != nil {
		return nil, err
	}

	ctx := providers.Context{
		RowCount:    req.RowCount,
		Rand:        mrand.New(mrand.NewSource(seed)),
		WordListDir: req.WordLists,
	}
	provReg := registry.DefaultProviderRegistry(ctx)
	genReg := registry.DefaultGeneratorRegistry()

	val := validation.NewValidator(provReg, genReg)
	warnings, err := val.ValidateConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	for _, w := range warnings {
		s.logger.Warn("%s", w)
	}

	executor := exec.NewExecutor(provReg, genReg, s.logger)
	executor.LenientTypes = req.LenientTypes

	return &preparedRun{
		id:        uuid.NewString(),
		cfg:       cfg,
		seed:      seed,
		warnings:  warnings,
		validator: val,
		executor:  executor,
		startedAt: startedAt,
	}, nil
}

func (s *RunService) finish(p *preparedRun, req *RunRequest, data *exec.MockData, stats *exec.LoadStats, sink string) (*Run, error) {
	configHash, err := hashing.HashConfig(p.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash config: %w", err)
	}
	seed := p.seed
	runHash, err := hashing.HashRunConfig(p.cfg, sink, req.RowCount, &seed)
	if err != nil {
		return nil, fmt.Errorf("failed to hash run: %w", err)
	}

	run := &Run{
		ID:          p.id,
		ConfigHash:  configHash,
		RunHash:     runHash,
		Seed:        p.seed,
		Tables:      len(data.Tables),
		Warnings:    p.warnings,
		StartedAt:   p.startedAt,
		CompletedAt: time.Now(),
		LoadStats:   stats,
	}
	for _, t := range data.Tables {
		run.TotalRows += int64(t.RowCount())
	}

	s.logger.Infow("run.completed", map[string]any{
		"run_id":      run.ID,
		"config_hash": run.ConfigHash,
		"seed":        run.Seed,
		"tables":      run.Tables,
		"total_rows":  run.TotalRows,
		"duration_ms": run.CompletedAt.Sub(run.StartedAt).Milliseconds(),
	})
	return run, nil
}

func (s *RunService) record(kind domain.RunKind, req *RunRequest, sink string, seed int64, startedAt time.Time, run *Run, runErr error) {
	if s.history == nil {
		return
	}

	completedAt := time.Now()
	rec := &domain.RunRecord{
		Kind:        kind,
		ConfigPath:  req.ConfigPath,
		Sink:        sink,
		Seed:        seed,
		RowCount:    req.RowCount,
		Status:      domain.RunStatusSuccess,
		StartedAt:   startedAt,
		CompletedAt: &completedAt,
	}
	if run != nil {
		rec.ID = run.ID
		rec.ConfigHash = run.ConfigHash
		rec.RunHash = run.RunHash
		rec.TotalRows = run.TotalRows
		if run.LoadStats != nil {
			if stats, err := json.Marshal(run.LoadStats); err == nil {
				rec.Stats = stats
			}
		}
	}
	if runErr != nil {
		rec.Status = domain.RunStatusFailed
		rec.Error = runErr.Error()
	}

	if err := s.history.Create(rec); err != nil {
		s.logger.Error("failed to record run %s: %v", rec.ID, err)
	}
}

// resolveSeed returns the requested seed, or a fresh one so that every run,
// failed or not, can be replayed.
func resolveSeed(req *RunRequest) int64 {
	if req.Seed != nil {
		return *req.Seed
	}
	return generateSeed()
}

func generateSeed() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return int64(binary.LittleEndian.Uint64(b[:]))
}
