package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendasul/sugestao-vendedor/internal/gateway"
)

func TestNormalizeRenamesEveryRawColumn(t *testing.T) {
	raw := gateway.RawRecord{
		"REFERENCIA":           "ABC123",
		"QUANTIDADE":           "5",
		"MARCA":                "Bosch",
		"TIPO_SUGESTAO":        "VENDA_PERDIDA",
		"COMENTARIO_VENDEDOR":  "cliente pediu",
		"VENDEDOR":             "Maria Silva",
		"ACAO_COMPRADOR":       "",
		"COMENTARIO_COMPRADOR": "",
		"ORDEM_COMPRA":         "",
		"CODIGO":               "98.76,5",
		"DESCRICAO_CODIGO":     "Parafuso",
		"DATA_LANCAMENTO":      "2024-03-15 09:30:00",
	}

	record := Normalize(raw)

	require.Len(t, record, len(DisplayColumns))
	assert.Equal(t, "ABC123", record[ColReference])
	assert.Equal(t, "5", record[ColQuantity])
	assert.Equal(t, "VENDA_PERDIDA", record[ColType])
	assert.Equal(t, "98765", record[ColCode])
	assert.Equal(t, "15/03/2024 09:30:00", record[ColStamp])
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := gateway.RawRecord{
		"REFERENCIA":      "ABC123",
		"CODIGO":          "1.234",
		"DATA_LANCAMENTO": "01/02/2024 10:00:00",
	}

	once := Normalize(raw)
	twice := Normalize(gateway.RawRecord(once))
	assert.Equal(t, once, twice)
}

func TestNormalizeKeepsUnknownColumns(t *testing.T) {
	record := Normalize(gateway.RawRecord{"EXTRA": "x", "REFERENCIA": "R1"})
	assert.Equal(t, "x", record["EXTRA"])
	assert.Equal(t, "R1", record[ColReference])
}

func TestNormalizeStamp(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already display form", "15/03/2024 09:30:00", "15/03/2024 09:30:00"},
		{"iso datetime", "2024-03-15 09:30:00", "15/03/2024 09:30:00"},
		{"iso t separator", "2024-03-15T09:30:00", "15/03/2024 09:30:00"},
		{"date only day first", "15/03/2024", "15/03/2024 00:00:00"},
		{"iso date only", "2024-03-15", "15/03/2024 00:00:00"},
		{"garbage", "ontem", ""},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeStamp(tc.in))
		})
	}
}

func TestCleanCode(t *testing.T) {
	assert.Equal(t, "98765", CleanCode(" 98.76,5 "))
	assert.Equal(t, "", CleanCode(""))
	assert.Equal(t, "ABC", CleanCode("ABC"))
}

func TestNormalizeAllAlwaysReturnsSlice(t *testing.T) {
	records := NormalizeAll(nil)
	require.NotNil(t, records)
	assert.Len(t, records, 0)
}
