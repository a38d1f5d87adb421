package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"leadboard/models"
	"leadboard/utils"
)

// Importer turns raw file content into canonical lead inputs. One file is
// processed to completion before its rows are handed to persistence; the
// importer itself holds no state between files.
type Importer struct {
	logger *utils.Logger
	now    func() time.Time
}

// New creates an Importer with the given logger.
func New(logger *utils.Logger) *Importer {
	return &Importer{logger: logger, now: time.Now}
}

// Import parses the file content according to its extension and returns the
// accepted lead inputs. An error means the file could not be parsed at all
// (format error) and zero rows are returned; individually rejected rows are
// skipped silently and only reduce the accepted count.
func (im *Importer) Import(filename string, content []byte) ([]models.LeadInput, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return im.importJSON(content)
	case ".xlsx", ".xls":
		return im.importExcel(content)
	default:
		// .csv, .tsv and anything unrecognized go through the tabular path.
		return im.importTabular(content), nil
	}
}

// importTabular runs the two-stage pipeline for delimited text: normal
// row mapping first, then the scorecard fallback when the file yields zero
// lead rows. The gate is the accepted-row count, not upfront sniffing — a
// file could validly be either schema.
func (im *Importer) importTabular(content []byte) []models.LeadInput {
	matrix := ParseTable(string(content))
	if len(matrix) == 0 {
		return nil
	}

	leads, skipped := im.mapMatrix(matrix)
	if len(leads) > 0 {
		im.logger.Info("[import] Mapped %d lead rows (%d skipped)", len(leads), skipped)
		return leads
	}

	leads = TransformScorecard(matrix, im.now().Year())
	if len(leads) > 0 {
		im.logger.Info("[import] Scorecard fallback produced %d leads", len(leads))
	}
	return leads
}

// mapMatrix treats the first matrix row as headers and maps every
// remaining row. Fewer than 2 rows is a valid, empty result.
func (im *Importer) mapMatrix(matrix [][]string) (leads []models.LeadInput, skipped int) {
	if len(matrix) < 2 {
		return nil, 0
	}

	headers := make([]string, len(matrix[0]))
	for i, h := range matrix[0] {
		headers[i] = NormalizeHeader(h)
	}

	for _, row := range matrix[1:] {
		record := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				record[h] = row[i]
			}
		}
		lead, ok := MapRow(record)
		if !ok {
			skipped++
			continue
		}
		leads = append(leads, lead)
	}
	return leads, skipped
}

// importJSON expects an array of flat key-value objects. Malformed JSON is
// a format error: nothing is imported.
func (im *Importer) importJSON(content []byte) ([]models.LeadInput, error) {
	var rows []map[string]any
	if err := json.Unmarshal(content, &rows); err != nil {
		return nil, fmt.Errorf("import: parse json: %w", err)
	}

	var leads []models.LeadInput
	skipped := 0
	for _, raw := range rows {
		record := make(map[string]string, len(raw))
		for k, v := range raw {
			record[NormalizeHeader(k)] = stringifyCell(v)
		}
		lead, ok := MapRow(record)
		if !ok {
			skipped++
			continue
		}
		leads = append(leads, lead)
	}
	im.logger.Info("[import] JSON: %d leads accepted (%d skipped)", len(leads), skipped)
	return leads, nil
}

// importExcel reads the first worksheet as header-keyed rows. Empty cells
// default to the empty string.
func (im *Importer) importExcel(content []byte) ([]models.LeadInput, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("import: open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("import: spreadsheet has no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("import: read worksheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = NormalizeHeader(h)
	}

	var leads []models.LeadInput
	skipped := 0
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i, h := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			record[h] = cell
		}
		lead, ok := MapRow(record)
		if !ok {
			skipped++
			continue
		}
		leads = append(leads, lead)
	}
	im.logger.Info("[import] Spreadsheet: %d leads accepted (%d skipped)", len(leads), skipped)
	return leads, nil
}

// stringifyCell renders a decoded JSON value the way it looked in the file,
// so numeric cells like 15 survive as "15".
func stringifyCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
