package file

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/xuri/excelize/v2"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Decode turns an uploaded .xlsx or .csv file into import rows. The first row
// is the header; the first sheet is read for workbooks. Trailing blank rows are
// dropped, interior ones are kept so row numbers match the sheet.
func Decode(fileName string, payload []byte) ([]domain.ImportRow, error) {
	var (
		records [][]string
		err     error
	)

	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".xlsx":
		records, err = readWorkbook(payload)
	case ".csv":
		records, err = readCSV(payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	return rowsFromRecords(records)
}

func readWorkbook(payload []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows from xlsx: %w", err)
	}
	return rows, nil
}

func readCSV(payload []byte) ([][]string, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

func rowsFromRecords(records [][]string) ([]domain.ImportRow, error) {
	if len(records) == 0 || isBlankRecord(records[0]) {
		return nil, ErrNoHeader
	}

	header := make([]string, len(records[0]))
	known := false
	for i, name := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(name))
		if slices.Contains(domain.Columns, header[i]) {
			known = true
		}
	}
	if !known {
		return nil, ErrUnknownColumns
	}

	data := records[1:]
	for len(data) > 0 && isBlankRecord(data[len(data)-1]) {
		data = data[:len(data)-1]
	}

	rows := make([]domain.ImportRow, 0, len(data))
	for _, record := range data {
		values := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" || i >= len(record) {
				continue
			}
			values[name] = record[i]
		}
		rows = append(rows, domain.NewImportRow(values))
	}
	return rows, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
