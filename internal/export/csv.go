// Package export streams datasets as CSV documents.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
)

const (
	// ChunkSize is the size of the write buffer in front of the destination.
	ChunkSize = 1024
	// FlushEvery is the amount of rows after which the destination is flushed.
	FlushEvery = 10000
)

// ExcludedColumns are internal columns dropped from schema derived headers.
var ExcludedColumns = []string{"id", "slug", "deleted_at", "created_at", "updated_at", "shipping_class_id"}

// SchemaHeader derives export header from table columns.
func SchemaHeader(columns []string) []string {
	excluded := make(map[string]struct{}, len(ExcludedColumns))
	for _, c := range ExcludedColumns {
		excluded[c] = struct{}{}
	}
	header := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, skip := excluded[c]; skip {
			continue
		}
		header = append(header, c)
	}
	return header
}

// Filename returns attachment file name for dataset name, random when empty.
func Filename(name string) string {
	if name == "" {
		name = uuid.NewString()
	}
	return name + ".csv"
}

// Write streams header and rows of the dataset to dst and returns amount of
// written rows. dst is flushed periodically when it implements http.Flusher.
// A row whose width differs from the header aborts the export.
func Write(dst io.Writer, ds *model.Dataset) (int, error) {
	if ds == nil {
		return 0, fmt.Errorf("%w: empty dataset", domainErrors.ErrExportFailed)
	}

	buf := bufio.NewWriterSize(dst, ChunkSize)
	w := csv.NewWriter(buf)
	flusher, _ := dst.(http.Flusher)

	if err := w.Write(ds.Columns); err != nil {
		return 0, fmt.Errorf("%w: write header: %v", domainErrors.ErrExportFailed, err)
	}

	written := 0
	for i, row := range ds.Rows {
		if len(row) != len(ds.Columns) {
			return written, fmt.Errorf("%w: row %d has %d fields, header has %d", domainErrors.ErrExportFailed, i+1, len(row), len(ds.Columns))
		}
		if err := w.Write(row); err != nil {
			return written, fmt.Errorf("%w: write row %d: %v", domainErrors.ErrExportFailed, i+1, err)
		}
		written++
		if written%FlushEvery == 0 {
			if err := flush(w, buf, flusher); err != nil {
				return written, err
			}
		}
	}

	if err := flush(w, buf, flusher); err != nil {
		return written, err
	}
	return written, nil
}

func flush(w *csv.Writer, buf *bufio.Writer, flusher http.Flusher) error {
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrExportFailed, err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrExportFailed, err)
	}
	if flusher != nil {
		flusher.Flush()
	}
	return nil
}
