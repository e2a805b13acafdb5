// Package report implements the consultation view over saved suggestions:
// a cached dataset, per-column equality filters and spreadsheet export.
package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/vendasul/sugestao-vendedor/internal/gateway"
	"github.com/vendasul/sugestao-vendedor/internal/normalizer"
	"github.com/vendasul/sugestao-vendedor/pkg/cache"
)

// AllSentinel is the filter value meaning "no restriction on this column".
const AllSentinel = "(Todos)"

// FilterColumns are the columns the consultation screen filters on.
// Quantidade and Comentário Vendedor are display-only.
var FilterColumns = []string{
	normalizer.ColReference,
	normalizer.ColBrand,
	normalizer.ColType,
	normalizer.ColSeller,
	normalizer.ColBuyerAction,
	normalizer.ColBuyerComment,
	normalizer.ColPurchaseOrder,
	normalizer.ColCode,
	normalizer.ColDescription,
	normalizer.ColStamp,
}

// FilterState holds the selected value per filter column. The zero state of
// every column is the sentinel.
type FilterState map[string]string

func NewFilterState() FilterState {
	state := make(FilterState, len(FilterColumns))
	for _, column := range FilterColumns {
		state[column] = AllSentinel
	}
	return state
}

func (f FilterState) Set(column, value string) {
	if value == "" {
		value = AllSentinel
	}
	f[column] = value
}

// Clear resets every column back to the sentinel in one step. Safe to call
// when nothing is selected.
func (f FilterState) Clear() {
	for _, column := range FilterColumns {
		f[column] = AllSentinel
	}
}

// active returns the columns that actually restrict the result.
func (f FilterState) active() map[string]string {
	selected := make(map[string]string)
	for column, value := range f {
		if value != "" && value != AllSentinel {
			selected[column] = value
		}
	}
	return selected
}

const datasetKey = "suggestions"

// Engine loads and caches the normalized dataset.
type Engine struct {
	gw      gateway.DataGateway
	dataset *cache.TTL[[]normalizer.Record]
}

func NewEngine(gw gateway.DataGateway, datasetTTL time.Duration) *Engine {
	return &Engine{
		gw:      gw,
		dataset: cache.New[[]normalizer.Record](datasetTTL),
	}
}

// Load returns the normalized dataset, served from cache within the TTL.
func (e *Engine) Load(ctx context.Context) ([]normalizer.Record, error) {
	if records, ok := e.dataset.Get(datasetKey); ok {
		return records, nil
	}
	raw, err := e.gw.FetchSuggestions(ctx)
	if err != nil {
		return nil, err
	}
	records := normalizer.NormalizeAll(raw)
	e.dataset.Set(datasetKey, records)
	return records, nil
}

// Reload drops the cached dataset and fetches a fresh one.
func (e *Engine) Reload(ctx context.Context) ([]normalizer.Record, error) {
	e.dataset.Invalidate(datasetKey)
	return e.Load(ctx)
}

// Options lists the choices for one filter column: the sentinel followed by
// the distinct non-empty values sorted case-insensitively.
func Options(records []normalizer.Record, column string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, record := range records {
		value := strings.TrimSpace(record[column])
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	sort.SliceStable(values, func(i, j int) bool {
		return strings.ToLower(values[i]) < strings.ToLower(values[j])
	})
	return append([]string{AllSentinel}, values...)
}

// Apply filters the dataset by exact equality on every active column and
// orders the result ascending by Referência. With no active filters the
// input comes back unchanged except for ordering.
func Apply(records []normalizer.Record, filters FilterState) []normalizer.Record {
	selected := filters.active()

	filtered := make([]normalizer.Record, 0, len(records))
	for _, record := range records {
		match := true
		for column, value := range selected {
			if record[column] != value {
				match = false
				break
			}
		}
		if match {
			filtered = append(filtered, record)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i][normalizer.ColReference] < filtered[j][normalizer.ColReference]
	})
	return filtered
}
