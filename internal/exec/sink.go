package exec

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SinkOpener returns the writer a table is serialized to.
type SinkOpener func(table string) (io.WriteCloser, error)

// DirSink creates <dir>/<table>.<ext> for every table, replacing existing
// files.
func DirSink(dir, ext string) SinkOpener {
	return func(table string) (io.WriteCloser, error) {
		if filepath.Base(table) != table {
			return nil, fmt.Errorf("table name '%s' is not a valid file name", table)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		return os.Create(filepath.Join(dir, fmt.Sprintf("%s.%s", table, ext)))
	}
}

// WriterSink sends every table to w. w is never closed.
func WriterSink(w io.Writer) SinkOpener {
	return func(string) (io.WriteCloser, error) {
		return nopCloser{w}, nil
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
