package enums

import "fmt"

// SuggestionType classifies a seller suggestion.
type SuggestionType string

const (
	SuggestionTypeVendaCasada  SuggestionType = "VENDA_CASADA"
	SuggestionTypeVendaPerdida SuggestionType = "VENDA_PERDIDA"
)

var validSuggestionTypes = []SuggestionType{
	SuggestionTypeVendaCasada,
	SuggestionTypeVendaPerdida,
}

// String implements fmt.Stringer.
func (s SuggestionType) String() string {
	return string(s)
}

// IsValid reports whether the suggestion type is recognized.
func (s SuggestionType) IsValid() bool {
	for _, candidate := range validSuggestionTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSuggestionType converts a raw string into a SuggestionType.
func ParseSuggestionType(value string) (SuggestionType, error) {
	for _, candidate := range validSuggestionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid suggestion type %q", value)
}
