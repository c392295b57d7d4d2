package obs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerLevelTracksSuppressProgress(t *testing.T) {
	normal := NewLogger("skim", false)
	quiet := NewLogger("skim", true)
	if normal.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("normal logger level = %v, want Info", normal.GetLevel())
	}
	if quiet.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("quiet logger level = %v, want Warn", quiet.GetLevel())
	}
}

func TestStatsWriterPreservesInsertionOrder(t *testing.T) {
	w := NewStatsWriter()
	w.Set("n", 100)
	w.Set("m", 500)
	w.SetPrefixed("phaseA", "seeds", 7)
	w.Set("n", 200) // overwrite, should not move position

	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	out := buf.String()
	t.Logf("stats output:\n%s", out)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "run_id = ") {
		t.Fatalf("first line = %q, want run_id header", lines[0])
	}
	if lines[1] != "n = 200" {
		t.Fatalf("line 1 = %q, want %q", lines[1], "n = 200")
	}
	if lines[2] != "m = 500" {
		t.Fatalf("line 2 = %q, want %q", lines[2], "m = 500")
	}
	if lines[3] != "phaseA_seeds = 7" {
		t.Fatalf("line 3 = %q, want %q", lines[3], "phaseA_seeds = 7")
	}
}

func TestStatsWriterFlushEmptyPathIsNoop(t *testing.T) {
	w := NewStatsWriter()
	w.Set("n", 1)
	log := NewLogger("test", false)
	w.Flush("", log) // must not panic or attempt to create a file
}

func TestCoverageWriterHeaderAndRows(t *testing.T) {
	w := NewCoverageWriter(50)
	w.Append(3, 1.0)
	w.Append(7, 2.5)

	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	out := buf.String()
	t.Logf("coverage output:\n%s", out)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if !strings.HasPrefix(lines[0], "run_id = ") {
		t.Fatalf("line 0 = %q, want run_id header", lines[0])
	}
	if lines[1] != "50" {
		t.Fatalf("line 1 (n) = %q, want 50", lines[1])
	}
	if lines[2] != "2" {
		t.Fatalf("line 2 (seed count) = %q, want 2", lines[2])
	}
	if len(lines) != 6 {
		t.Fatalf("expected 4 header lines + 2 data rows, got %d lines", len(lines))
	}
	fields := strings.Split(lines[4], "\t")
	if fields[0] != "3" || fields[1] != "1" {
		t.Fatalf("first data row = %v, want vertex=3 influence=1", fields)
	}
}

func TestCoverageWriterFlushEmptyPathIsNoop(t *testing.T) {
	w := NewCoverageWriter(10)
	w.Append(0, 1.0)
	log := NewLogger("test", false)
	w.Flush("", log)
}
