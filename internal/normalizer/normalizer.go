// Package normalizer converts raw backend suggestion rows into the display
// shape: friendly Portuguese column names, day-first timestamps and cleaned
// item codes. It is pure data mapping; no I/O.
package normalizer

import (
	"strings"
	"time"

	"github.com/vendasul/sugestao-vendedor/internal/gateway"
)

// Record is one suggestion row keyed by display column names.
type Record map[string]string

// Display column names.
const (
	ColReference     = "Referência"
	ColQuantity      = "Quantidade"
	ColBrand         = "Marca"
	ColType          = "Tipo Sugestão"
	ColSellerComment = "Comentário Vendedor"
	ColSeller        = "Vendedor"
	ColBuyerAction   = "Ação Comprador"
	ColBuyerComment  = "Comentário Comprador"
	ColPurchaseOrder = "Ordem Compra"
	ColCode          = "Código"
	ColDescription   = "Descrição Código"
	ColStamp         = "Data Lançamento"
)

// DisplayColumns is the canonical column order for tables and exports.
var DisplayColumns = []string{
	ColReference, ColQuantity, ColBrand, ColType, ColSellerComment,
	ColSeller, ColBuyerAction, ColBuyerComment,
	ColPurchaseOrder, ColCode, ColDescription, ColStamp,
}

var renameMap = map[string]string{
	"REFERENCIA":           ColReference,
	"QUANTIDADE":           ColQuantity,
	"MARCA":                ColBrand,
	"TIPO_SUGESTAO":        ColType,
	"COMENTARIO_VENDEDOR":  ColSellerComment,
	"VENDEDOR":             ColSeller,
	"ACAO_COMPRADOR":       ColBuyerAction,
	"COMENTARIO_COMPRADOR": ColBuyerComment,
	"ORDEM_COMPRA":         ColPurchaseOrder,
	"CODIGO":               ColCode,
	"DESCRICAO_CODIGO":     ColDescription,
	"DATA_LANCAMENTO":      ColStamp,
}

// StampLayout is the day-first output format for Data Lançamento.
const StampLayout = "02/01/2006 15:04:05"

// stampLayouts are tried in order when parsing incoming timestamps. The
// output layout comes first so normalizing twice is a no-op.
var stampLayouts = []string{
	StampLayout,
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Normalize maps one raw record to the display shape. Keys already in
// display form pass through untouched, so Normalize(Normalize(r)) equals
// Normalize(r).
func Normalize(raw gateway.RawRecord) Record {
	record := make(Record, len(raw))
	for key, value := range raw {
		if display, ok := renameMap[key]; ok {
			key = display
		}
		record[key] = value
	}
	if stamp, ok := record[ColStamp]; ok {
		record[ColStamp] = NormalizeStamp(stamp)
	}
	if code, ok := record[ColCode]; ok {
		record[ColCode] = CleanCode(code)
	}
	return record
}

// NormalizeAll maps every record, always returning a non-nil slice.
func NormalizeAll(raw []gateway.RawRecord) []Record {
	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, Normalize(r))
	}
	return records
}

// NormalizeStamp parses a timestamp permissively (day-first preferred) and
// reformats it as "dd/mm/yyyy hh:mm:ss". Unparseable input becomes "".
func NormalizeStamp(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, layout := range stampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(StampLayout)
		}
	}
	return ""
}

// CleanCode strips thousand/decimal separators that leak from the legacy
// table, where codes are stored numerically.
func CleanCode(code string) string {
	code = strings.ReplaceAll(code, ".", "")
	code = strings.ReplaceAll(code, ",", "")
	return strings.TrimSpace(code)
}
