package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

// WriteCSV writes the table with a header row in export column order.
func WriteCSV(w io.Writer, t pipeline.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(pipeline.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// CSVSink writes each table to <Dir>/<variant>.csv.
type CSVSink struct {
	Dir string
}

func (s CSVSink) Path(variant string) string {
	return filepath.Join(s.Dir, variant+".csv")
}

func (s CSVSink) Write(ctx context.Context, t pipeline.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := s.Path(t.Variant)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}
