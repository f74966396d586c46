package exec

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmrzaf/mocker/internal/domain"
	"github.com/mmrzaf/mocker/internal/logging"
	"github.com/mmrzaf/mocker/internal/parser"
	"github.com/mmrzaf/mocker/internal/providers"
	"github.com/mmrzaf/mocker/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}

func newTestExecutor(t *testing.T, logger *logging.Logger) *Executor {
	t.Helper()
	ctx := providers.Context{RowCount: 2, Rand: rand.New(zeroSource{}), WordListDir: t.TempDir()}
	return NewExecutor(registry.DefaultProviderRegistry(ctx), registry.DefaultGeneratorRegistry(), logger)
}

func mustParse(t *testing.T, text string) *domain.Config {
	t.Helper()
	cfg, err := parser.Parse(text)
	require.NoError(t, err)
	return cfg
}

func TestGenerateAndWriteTsql(t *testing.T) {
	e := newTestExecutor(t, nil)
	cfg := mustParse(t, `
table test {
	first string #random('a', 'b'),
	second string #gender(true)
}`)

	data, err := e.Generate(cfg, 2)
	require.NoError(t, err)
	require.Len(t, data.Tables, 1)
	assert.Equal(t, 2, data.Tables[0].RowCount())
	assert.Equal(t, []string{"first", "second"}, data.Tables[0].ColumnNames())

	var buf bytes.Buffer
	require.NoError(t, e.Write(data, "tsql", WriterSink(&buf)))
	assert.Equal(t,
		"insert into test (first, second) values ('a', 'FEMALE');\n"+
			"insert into test (first, second) values ('a', 'FEMALE');\n",
		buf.String())
}

func TestGenerateRowSequencePerTable(t *testing.T) {
	e := newTestExecutor(t, nil)
	cfg := mustParse(t, `
table a { id uint #row() }
table b { id uint #row() }`)

	data, err := e.Generate(cfg, 3)
	require.NoError(t, err)
	for _, table := range data.Tables {
		assert.Equal(t, []domain.CellValue{domain.UintValue(1), domain.UintValue(2), domain.UintValue(3)}, table.Columns[0].Data)
	}
}

func TestGenerateErrorsNameTableAndColumn(t *testing.T) {
	e := newTestExecutor(t, nil)

	_, err := e.Generate(mustParse(t, "table t { c int #missing() }"), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrUnknownCreator)
	assert.Contains(t, err.Error(), "table 't', column 'c'")

	_, err = e.Generate(mustParse(t, "table t { c string #random('x') }"), 1)
	var arity *domain.ArityError
	assert.ErrorAs(t, err, &arity)

	_, err = e.Generate(mustParse(t, "table t { c int #number() }"), 0)
	assert.Error(t, err)
}

func TestGenerateRejectsIncompatibleType(t *testing.T) {
	e := newTestExecutor(t, nil)

	_, err := e.Generate(mustParse(t, "table t { id int #row() }"), 2)
	var incompatible *domain.IncompatibleTypeError
	require.ErrorAs(t, err, &incompatible)
	assert.Contains(t, err.Error(), "row 0")

	_, err = e.Generate(mustParse(t, "table t { g string(1) #gender(true) }"), 1)
	assert.ErrorAs(t, err, &incompatible)
}

func TestGenerateLenientTypesWarnsOncePerColumn(t *testing.T) {
	var logs bytes.Buffer
	e := newTestExecutor(t, logging.NewLoggerWithWriter("warn", &logs))
	e.LenientTypes = true

	data, err := e.Generate(mustParse(t, "table t { id int #row(), n float #number(1, 5) }"), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.UintValue(3), data.Tables[0].Columns[0].Data[2])

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "column.incompatible_type", rec["msg"])
	assert.Equal(t, "id", rec["column"])
	assert.Equal(t, "exec", rec["component"])
}

func TestWriteToDirectory(t *testing.T) {
	e := newTestExecutor(t, nil)
	data, err := e.Generate(mustParse(t, "table users { id uint #row() }, table pets { id uint #row() }"), 2)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, e.Write(data, "csv", DirSink(dir, "csv")))

	users, err := os.ReadFile(filepath.Join(dir, "users.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n2\n", string(users))
	assert.FileExists(t, filepath.Join(dir, "pets.csv"))
}

func TestWriteUnknownFormat(t *testing.T) {
	e := newTestExecutor(t, nil)
	err := e.Write(&MockData{}, "xml", WriterSink(&bytes.Buffer{}))
	assert.ErrorIs(t, err, registry.ErrUnknownCreator)
}

func TestDirSinkRejectsPathTables(t *testing.T) {
	_, err := DirSink(t.TempDir(), "sql")("../escape")
	assert.Error(t, err)
}

type fakeTarget struct {
	calls    []string
	batches  [][][]interface{}
	columns  []string
	failWith error
}

func (f *fakeTarget) Connect() error {
	f.calls = append(f.calls, "connect")
	return f.failWith
}

func (f *fakeTarget) Close() error {
	f.calls = append(f.calls, "close")
	return nil
}

func (f *fakeTarget) CreateTableIfNotExists(table TableData) error {
	f.calls = append(f.calls, "create "+table.Name)
	return nil
}

func (f *fakeTarget) TruncateTable(name string) error {
	f.calls = append(f.calls, "truncate "+name)
	return nil
}

func (f *fakeTarget) InsertBatch(name string, columns []string, rows [][]interface{}) error {
	f.calls = append(f.calls, "insert "+name)
	f.columns = columns
	cp := make([][]interface{}, len(rows))
	copy(cp, rows)
	f.batches = append(f.batches, cp)
	return nil
}

func TestLoadBatchesRows(t *testing.T) {
	e := newTestExecutor(t, nil)
	data, err := e.Generate(mustParse(t, "table users { id uint #row(), name string #const('x') }"), 2500)
	require.NoError(t, err)

	target := &fakeTarget{}
	stats, err := e.Load(data, target, "truncate")
	require.NoError(t, err)

	assert.Equal(t, []string{"connect", "create users", "truncate users", "insert users", "insert users", "insert users", "close"}, target.calls)
	require.Len(t, target.batches, 3)
	assert.Len(t, target.batches[0], 1000)
	assert.Len(t, target.batches[2], 500)
	assert.Equal(t, []interface{}{uint64(1), "x"}, target.batches[0][0])
	assert.Equal(t, []interface{}{uint64(2500), "x"}, target.batches[2][499])
	assert.Equal(t, []string{"id", "name"}, target.columns)
	assert.Equal(t, int64(2500), stats.TotalRows)
}

func TestLoadModes(t *testing.T) {
	e := newTestExecutor(t, nil)
	data, err := e.Generate(mustParse(t, "table users { id uint #row() }"), 1)
	require.NoError(t, err)

	appendTarget := &fakeTarget{}
	_, err = e.Load(data, appendTarget, "append")
	require.NoError(t, err)
	assert.Equal(t, []string{"connect", "insert users", "close"}, appendTarget.calls)

	_, err = e.Load(data, &fakeTarget{}, "replace")
	assert.Error(t, err)

	_, err = e.Load(data, &fakeTarget{failWith: errors.New("refused")}, "create")
	assert.ErrorContains(t, err, "refused")
}

func TestLoadRejectsUnsafeIdentifiers(t *testing.T) {
	e := newTestExecutor(t, nil)
	data, err := e.Generate(mustParse(t, "table select { id uint #row() }"), 1)
	require.NoError(t, err)

	target := &fakeTarget{}
	_, err = e.Load(data, target, "create")
	assert.Error(t, err)
	assert.Empty(t, target.calls)
}
