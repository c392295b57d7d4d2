package obs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CoverageRow is one seed's running totals, as tracked by cmd/skim's -oc
// coverage-trace companion.
type CoverageRow struct {
	VertexID            uint32
	CumulativeInfluence float64
	CumulativeMillis    int64
}

// CoverageWriter accumulates cmd/skim's -oc coverage trace: spec.md §6.2's
// "three leading lines (n, seed-count, total ms) then tab-separated
// vertexId\texactCumulativeSpread\tcumulativeMs lines". The run id is
// written as a fourth header line ahead of those three, the same
// extension NewStatsWriter applies to the stats file.
type CoverageWriter struct {
	runID string
	n     uint32
	rows  []CoverageRow
	start time.Time
}

// NewCoverageWriter starts a coverage trace for a graph of n vertices.
func NewCoverageWriter(n uint32) *CoverageWriter {
	return &CoverageWriter{runID: uuid.NewString(), n: n, start: time.Now()}
}

// Append records one seed's cumulative influence at the moment it was
// picked, timestamping it against the writer's construction time.
func (w *CoverageWriter) Append(vertexID uint32, cumulativeInfluence float64) {
	w.rows = append(w.rows, CoverageRow{
		VertexID:            vertexID,
		CumulativeInfluence: cumulativeInfluence,
		CumulativeMillis:    time.Since(w.start).Milliseconds(),
	})
}

// WriteTo writes the header lines followed by the tab-separated rows.
func (w *CoverageWriter) WriteTo(out io.Writer) error {
	bw := bufio.NewWriter(out)
	if _, err := fmt.Fprintf(bw, "run_id = %s\n", w.runID); err != nil {
		return err
	}
	totalMillis := int64(0)
	if len(w.rows) > 0 {
		totalMillis = w.rows[len(w.rows)-1].CumulativeMillis
	}
	if _, err := fmt.Fprintf(bw, "%d\n%d\n%d\n", w.n, len(w.rows), totalMillis); err != nil {
		return err
	}
	for _, row := range w.rows {
		if _, err := fmt.Fprintf(bw, "%d\t%g\t%d\n", row.VertexID, row.CumulativeInfluence, row.CumulativeMillis); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Flush opens path and writes the trace, following the same
// log-and-continue convention StatsWriter.Flush uses for I/O failures.
func (w *CoverageWriter) Flush(path string, log zerolog.Logger) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to open coverage output file")
		return
	}
	defer f.Close()
	if err := w.WriteTo(f); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to write coverage output file")
	}
}
