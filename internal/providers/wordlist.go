package providers

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmrzaf/mocker/internal/domain"
)

const (
	firstNamesFile = "first_names.txt"
	lastNamesFile  = "last_names.txt"
)

// WordListProvider picks uniformly from the lines of a word list file that
// is read once when the provider is created.
type WordListProvider struct {
	NopReset
	rng   *rand.Rand
	words []string
}

func NewFirstNameProvider(ctx Context) (Provider, error) {
	return newWordListProvider(ctx, firstNamesFile)
}

func NewLastNameProvider(ctx Context) (Provider, error) {
	return newWordListProvider(ctx, lastNamesFile)
}

func newWordListProvider(ctx Context, file string) (*WordListProvider, error) {
	words, err := readWordList(filepath.Join(ctx.WordListDir, file))
	if err != nil {
		return nil, &UnknownError{Err: err}
	}
	return &WordListProvider{rng: ctx.rng(), words: words}, nil
}

func readWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if w := strings.TrimSpace(scanner.Text()); w != "" {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s is empty", path)
	}
	return words, nil
}

func (p *WordListProvider) Provide() (domain.CellValue, error) {
	return domain.StringValue(p.words[p.rng.Intn(len(p.words))]), nil
}
