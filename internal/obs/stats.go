package obs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StatsWriter accumulates ordered key=value pairs (spec.md §6.2's "Stats
// output": "ordered key = value lines, one per line, key is
// [prefix_]name") and writes them to a file on Flush. Keys are written in
// the order they were first set, matching how a real run accumulates
// phase-by-phase numbers rather than alphabetizing them.
type StatsWriter struct {
	runID  string
	order  []string
	values map[string]string
}

// NewStatsWriter starts a fresh stats accumulator tagged with a random
// run id, so repeated runs against the same -os path can be distinguished
// by grepping the file.
func NewStatsWriter() *StatsWriter {
	return &StatsWriter{
		runID:  uuid.NewString(),
		values: make(map[string]string),
	}
}

// Set records key=value, overwriting any prior value for the same key
// without changing its position in the write order.
func (w *StatsWriter) Set(key string, value interface{}) {
	if _, exists := w.values[key]; !exists {
		w.order = append(w.order, key)
	}
	w.values[key] = fmt.Sprint(value)
}

// SetPrefixed is Set with spec.md §6.2's "[prefix_]name" key convention.
func (w *StatsWriter) SetPrefixed(prefix, name string, value interface{}) {
	key := name
	if prefix != "" {
		key = prefix + "_" + name
	}
	w.Set(key, value)
}

// WriteTo writes the accumulated key=value lines, run_id first, to w.
func (w *StatsWriter) WriteTo(out io.Writer) error {
	bw := bufio.NewWriter(out)
	if _, err := fmt.Fprintf(bw, "run_id = %s\n", w.runID); err != nil {
		return err
	}
	for _, key := range w.order {
		if _, err := fmt.Fprintf(bw, "%s = %s\n", key, w.values[key]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Flush opens path and writes the accumulated stats to it. Per spec.md §7
// ("I/O failure on stats output: silently skip — runs still produce
// console output; non-fatal"), a failure here is logged as a warning and
// otherwise swallowed rather than propagated as an error the caller must
// handle — the run itself already succeeded.
func (w *StatsWriter) Flush(path string, log zerolog.Logger) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to open stats output file")
		return
	}
	defer f.Close()
	if err := w.WriteTo(f); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to write stats output file")
	}
}

// SortedKeys is a convenience for tests and diagnostics that want a stable
// view of what has been recorded so far, independent of insertion order.
func (w *StatsWriter) SortedKeys() []string {
	keys := make([]string, len(w.order))
	copy(keys, w.order)
	sort.Strings(keys)
	return keys
}
