package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vendasul/sugestao-vendedor/internal/normalizer"
)

func TestExportSingleSheetWithHeaderAndRows(t *testing.T) {
	records := []normalizer.Record{
		{
			normalizer.ColReference: "A100",
			normalizer.ColQuantity:  "5",
			normalizer.ColBrand:     "Bosch",
			normalizer.ColSeller:    "Maria Silva",
			normalizer.ColStamp:     "15/03/2024 09:30:00",
		},
	}

	payload, err := Export(records)
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer workbook.Close()

	require.Equal(t, []string{"Consulta"}, workbook.GetSheetList())

	rows, err := workbook.GetRows("Consulta")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, normalizer.DisplayColumns, rows[0])
	assert.Equal(t, "A100", rows[1][0])
	assert.Equal(t, "Bosch", rows[1][2])
	assert.Equal(t, "Maria Silva", rows[1][5])
}

func TestExportEmptyDatasetStillHasHeader(t *testing.T) {
	payload, err := Export(nil)
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Consulta")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, normalizer.DisplayColumns, rows[0])
}
