package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nvandessel/auralie/internal/models"
)

// ExportJSONL writes every result in src to w, one JSON document per line.
// It returns the number of results written.
func ExportJSONL(ctx context.Context, src ResultStore, w io.Writer) (int, error) {
	summaries, err := src.List(ctx)
	if err != nil {
		return 0, err
	}
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	n := 0
	for _, sum := range summaries {
		r, err := src.Get(ctx, sum.ID)
		if err != nil {
			return n, fmt.Errorf("failed to export %s: %w", sum.ID, err)
		}
		if err := enc.Encode(r); err != nil {
			return n, fmt.Errorf("failed to encode %s: %w", sum.ID, err)
		}
		n++
	}
	return n, bw.Flush()
}

// ImportJSONL saves every line of r into dst. Blank lines are skipped; a
// malformed line stops the import.
func ImportJSONL(ctx context.Context, dst ResultStore, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024) // results with many turns run long

	n, lineNum := 0, 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var res models.SimulationResult
		if err := json.Unmarshal(line, &res); err != nil {
			return n, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if err := dst.Save(ctx, &res); err != nil {
			return n, fmt.Errorf("line %d: %w", lineNum, err)
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("scanner error: %w", err)
	}
	return n, nil
}
