// Package gateway defines the capability surface the form and report flows
// use to reach a backend. Two interchangeable implementations exist: a
// remote intake API client and an embedded database. Selection happens at
// startup from configuration; callers never branch on the backend kind.
package gateway

import (
	"context"
	"strings"

	"github.com/vendasul/sugestao-vendedor/pkg/enums"
)

// RawRecord is one backend suggestion row keyed by the raw legacy column
// names. Values are stringly typed; the normalizer owns the display shape.
type RawRecord map[string]string

// Item is one catalog candidate resolved for a reference.
type Item struct {
	Code        string
	Description string
}

// AuthResult reports a credential check. DisplayName may be empty even on
// success; callers fall back to the login.
type AuthResult struct {
	OK          bool
	DisplayName string
}

// SuggestionInput carries the seller-writable fields of a new suggestion.
// Buyer-side fields are never part of the write path.
type SuggestionInput struct {
	Reference       string
	Quantity        int
	Brand           string
	Type            enums.SuggestionType
	Comment         string
	ItemCode        string
	ItemDescription string
	Seller          string
}

// DataGateway abstracts the persistence backend.
type DataGateway interface {
	Authenticate(ctx context.Context, login, password string) (AuthResult, error)
	FetchSuggestions(ctx context.Context) ([]RawRecord, error)
	FetchItemsForReference(ctx context.Context, reference string) ([]Item, error)
	InsertSuggestion(ctx context.Context, input SuggestionInput) error
	CheckHealth(ctx context.Context) bool
}

// DedupeItems removes exact (code, description) duplicates while preserving
// first-seen order.
func DedupeItems(items []Item) []Item {
	seen := make(map[Item]struct{}, len(items))
	deduped := make([]Item, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		deduped = append(deduped, item)
	}
	return deduped
}

// CredentialsPresent reports whether both login and password are usable.
// Both gateways fail closed without a backend call when this is false.
func CredentialsPresent(login, password string) bool {
	return strings.TrimSpace(login) != "" && password != ""
}
