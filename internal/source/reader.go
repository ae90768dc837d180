// Package source reads bibliographic export files into raw rows. The rest
// of the pipeline never touches the file format; it consumes rows of named
// fields.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"zotgraph/internal/record"
	"zotgraph/pkg/errors"
	"zotgraph/pkg/logger"
)

// Reader parses tabular export files into raw rows
type Reader struct {
	logger *zap.Logger
}

// NewReader creates a new source file reader
func NewReader() *Reader {
	return &Reader{
		logger: logger.Get(),
	}
}

// ReadFile parses the file at path into raw rows, decoding with the named
// encoding ("" defaults to UTF-8 with an optional byte-order marker, the
// usual Zotero export shape). It returns the rows and the column list in
// file order. Any read or decode failure is fatal for the whole run.
func (r *Reader) ReadFile(path, encodingName string) ([]record.Row, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewInputUnreadable(path, err)
	}
	defer f.Close()

	decoded, err := decodingReader(f, encodingName)
	if err != nil {
		return nil, nil, errors.NewInputUnreadable(path, err)
	}

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, errors.NewInputUnreadable(path, fmt.Errorf("reading header: %w", err))
	}

	rows := []record.Row{}
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.NewInputUnreadable(path, fmt.Errorf("reading row %d: %w", len(rows)+2, err))
		}

		row := make(record.Row, len(header))
		for i, col := range header {
			if i < len(fields) {
				row[col] = fields[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	r.logger.Info("Read input file",
		zap.String("path", path),
		zap.Int("records", len(rows)))

	return rows, header, nil
}

// decodingReader wraps raw in a decoder for the named encoding. The default
// strips a leading UTF-8 byte-order marker; named encodings are resolved by
// their WHATWG label (gbk, big5, latin1, ...) with a BOM still taking
// precedence when present.
func decodingReader(raw io.Reader, encodingName string) (io.Reader, error) {
	name := strings.ToLower(strings.TrimSpace(encodingName))
	switch name {
	case "", "utf-8", "utf8", "utf-8-sig":
		return transform.NewReader(raw, unicode.UTF8BOM.NewDecoder()), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", encodingName, err)
	}
	return transform.NewReader(raw, unicode.BOMOverride(enc.NewDecoder())), nil
}
