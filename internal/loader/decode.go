package loader

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// The upstream CSV dialect: semicolon delimiter, double-quoted strings.
// DecodeCSV returns one map per data row keyed by the header line.
func DecodeCSV(data []byte) ([]map[string]interface{}, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ';'
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]interface{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		row := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DecodeJSON expects the upstream array-of-objects payload.
func DecodeJSON(data []byte) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode json payload: %w", err)
	}
	return rows, nil
}

// DecodeZip extracts the first CSV or JSON member of a ZIP archive and
// decodes it.
func DecodeZip(data []byte) ([]map[string]interface{}, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip archive: %w", err)
	}
	for _, f := range zr.File {
		ext := strings.ToLower(filepath.Ext(f.Name))
		if ext != ".csv" && ext != ".json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		if ext == ".csv" {
			return DecodeCSV(b)
		}
		return DecodeJSON(b)
	}
	return nil, fmt.Errorf("zip archive holds no csv or json member")
}

// Decode picks the decoder for a file type ("csv", "json" or "zip").
func Decode(data []byte, filetype string) ([]map[string]interface{}, error) {
	switch strings.ToLower(filetype) {
	case "csv":
		return DecodeCSV(data)
	case "json":
		return DecodeJSON(data)
	case "zip":
		return DecodeZip(data)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filetype)
	}
}

// LoadFile reads <dir>/<table>.<filetype> and loads it in replace mode.
// The fetch flow writes files with exactly this naming, so reload can pick
// them up later without re-downloading.
func (s *Service) LoadFile(ctx context.Context, dir, table, filetype string) (int, error) {
	path := filepath.Join(dir, table+"."+strings.ToLower(filetype))
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	rows, err := Decode(data, filetype)
	if err != nil {
		return 0, err
	}
	return s.Load(ctx, table, rows, ModeReplace)
}
