package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one member entry of an import file. LocalImagePath, when set, is
// uploaded and replaces ImageURL.
type Row struct {
	Name           string `json:"name"`
	Role           string `json:"role"`
	ImageURL       string `json:"image_url"`
	LattesURL      string `json:"lattes_url"`
	ResearchTopic  string `json:"research_topic"`
	Category       string `json:"category"`
	LocalImagePath string `json:"local_image_path"`
}

// ReadFile picks the decoder from the file extension (.json or .xlsx).
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".xlsx":
		return ReadXLSX(f)
	default:
		return nil, fmt.Errorf("unsupported import format %q (want .json or .xlsx)", filepath.Ext(path))
	}
}

func ReadJSON(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode members json: %w", err)
	}
	return rows, nil
}

// ReadXLSX reads the first sheet. Columns are matched by header name, so the
// export workbook (with its id and created_at columns) imports as is.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(raw[0]))
	for i, h := range raw[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, fmt.Errorf("missing required column %q", "name")
	}

	cell := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]Row, 0, len(raw)-1)
	for _, record := range raw[1:] {
		row := Row{
			Name:           cell(record, "name"),
			Role:           cell(record, "role"),
			ImageURL:       cell(record, "image_url"),
			LattesURL:      cell(record, "lattes_url"),
			ResearchTopic:  cell(record, "research_topic"),
			Category:       cell(record, "category"),
			LocalImagePath: cell(record, "local_image_path"),
		}
		if row == (Row{}) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
