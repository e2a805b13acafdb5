package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vendasul/sugestao-vendedor/internal/normalizer"
)

const exportSheet = "Consulta"

// ExportFilename is the download name for the spreadsheet.
const ExportFilename = "consulta_sugestoes.xlsx"

// Export renders the filtered view as an xlsx workbook with a single sheet:
// one header row of display labels and one row per record, no index column.
func Export(records []normalizer.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(normalizer.DisplayColumns))
	for i, column := range normalizer.DisplayColumns {
		header[i] = column
	}
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	for i, record := range records {
		row := make([]any, len(normalizer.DisplayColumns))
		for j, column := range normalizer.DisplayColumns {
			row[j] = record[column]
		}
		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
