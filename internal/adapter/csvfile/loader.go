// Package csvfile loads sighting datasets from delimited text files.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/sightings-explorer/internal/domain"
	"github.com/couchcryptid/sightings-explorer/internal/observability"
)

// StdinPath makes Load read from standard input.
const StdinPath = "-"

const utf8BOM = "\ufeff"

// Load reads the CSV file at path into a Dataset. A missing or unreadable
// file is not an error: it is logged and an empty Dataset is returned.
func Load(path string, logger *slog.Logger, metrics *observability.Metrics) (*domain.Dataset, error) {
	if path == StdinPath {
		return LoadFromReader(os.Stdin, "stdin", logger, metrics)
	}

	f, err := os.Open(path)
	if err != nil {
		reason := "read_error"
		if errors.Is(err, fs.ErrNotExist) {
			reason = "missing_file"
		}
		logger.Warn("dataset file not found", "path", path, "error", err)
		metrics.LoadErrors.WithLabelValues(reason).Inc()
		metrics.RecordsLoaded.Set(0)
		return domain.NewDataset(path, nil), nil
	}
	defer f.Close()

	return LoadFromReader(f, path, logger, metrics)
}

// LoadFromReader parses CSV from r. The first row is the header. Rows that
// fail to parse are skipped; other read errors abort the load.
func LoadFromReader(r io.Reader, source string, logger *slog.Logger, metrics *observability.Metrics) (*domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		logger.Warn("dataset is empty", "source", source)
		metrics.RecordsLoaded.Set(0)
		return domain.NewDataset(source, nil), nil
	}
	if err != nil {
		metrics.LoadErrors.WithLabelValues("read_error").Inc()
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var records []domain.Sighting
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				logger.Warn("skipping malformed row", "source", source, "line", parseErr.Line, "error", err)
				metrics.RowsSkipped.Inc()
				continue
			}
			metrics.LoadErrors.WithLabelValues("read_error").Inc()
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		records = append(records, domain.NormalizeRow(toRow(header, fields)))
	}

	metrics.RecordsLoaded.Set(float64(len(records)))
	logger.Info("dataset loaded", "source", source, "records", len(records))

	return domain.NewDataset(source, records), nil
}

// toRow zips header and fields. Short rows leave trailing columns absent;
// extra cells without a header are dropped.
func toRow(header, fields []string) domain.Row {
	row := make(domain.Row, len(header))
	for i, name := range header {
		if i < len(fields) {
			row[name] = fields[i]
		}
	}
	return row
}
