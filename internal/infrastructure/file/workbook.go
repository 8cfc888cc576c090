package file

import (
	"fmt"
	"io"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/xuri/excelize/v2"
)

const (
	templateSheet = "Trainings"
	errorsSheet   = "Errors"
	errorColumn   = "error"
)

// WriteTemplate writes an empty import workbook with the expected header row.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeHeader(f, templateSheet, domain.Columns); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write template workbook: %w", err)
	}
	return nil
}

// WriteErrorWorkbook writes rejected rows in the import column shape plus an
// error column, so the file can be corrected and uploaded again.
func WriteErrorWorkbook(w io.Writer, rows []domain.RejectedRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header := append(append([]string(nil), domain.Columns...), errorColumn)
	if err := writeHeader(f, errorsSheet, header); err != nil {
		return err
	}

	for i, rejected := range rows {
		values := append(rejected.Row.Values(), rejected.Message)
		cells := make([]any, len(values))
		for j, value := range values {
			cells[j] = value
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(errorsSheet, cell, &cells); err != nil {
			return fmt.Errorf("write error row %d: %w", rejected.RowNumber, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write error workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	cells := make([]any, len(header))
	for i, name := range header {
		cells[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("column name: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}
