// Package form models the suggestion entry flow as an explicit state
// machine over immutable state values, so every transition is testable
// without a UI.
package form

import (
	"context"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/vendasul/sugestao-vendedor/internal/gateway"
	"github.com/vendasul/sugestao-vendedor/pkg/enums"
	pkgerrors "github.com/vendasul/sugestao-vendedor/pkg/errors"
	"github.com/vendasul/sugestao-vendedor/pkg/logger"
)

// Phase is where the form currently stands. Submission is synchronous, so
// there is no observable in-flight phase: Submit blocks and lands on Saved,
// ValidationFailed or SubmitFailed.
type Phase string

const (
	PhaseIdle             Phase = "IDLE"
	PhaseItemsLoaded      Phase = "ITEMS_LOADED"
	PhaseItemSelected     Phase = "ITEM_SELECTED"
	PhaseSaved            Phase = "SAVED"
	PhaseValidationFailed Phase = "VALIDATION_FAILED"
	PhaseSubmitFailed     Phase = "SUBMIT_FAILED"
)

// successWindow is how long the saved confirmation stays visible.
const successWindow = 5 * time.Second

// State is the full form snapshot. Transitions return a new value; the
// zero value is a pristine form.
type State struct {
	Phase Phase

	Reference string
	Quantity  int // 0 means unset; valid range is 1..1000
	Brand     string
	Type      enums.SuggestionType
	Comment   string

	Items               []gateway.Item
	SelectedLabel       string
	SelectedCode        string
	SelectedDescription string

	SavedAt time.Time
}

// Machine drives form transitions against a backend gateway.
type Machine struct {
	gw    gateway.DataGateway
	logg  *logger.Logger
	clock func() time.Time
}

func NewMachine(gw gateway.DataGateway, logg *logger.Logger) *Machine {
	return &Machine{gw: gw, logg: logg, clock: time.Now}
}

// ItemLabel renders the selectable label for a catalog item.
func ItemLabel(item gateway.Item) string {
	if item.Description == "" {
		return item.Code
	}
	return item.Code + " - " + item.Description
}

// Labels lists the selectable labels for the loaded items.
func (s State) Labels() []string {
	labels := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		labels = append(labels, ItemLabel(item))
	}
	return labels
}

// SetReference stores the new reference and reloads its items. Any previous
// selection is dropped first; a lookup failure degrades to an empty item
// list rather than blocking the form.
func (m *Machine) SetReference(ctx context.Context, s State, reference string) State {
	s.Reference = reference
	s.Items = nil
	s.SelectedLabel = ""
	s.SelectedCode = ""
	s.SelectedDescription = ""
	s.Phase = PhaseIdle

	if strings.TrimSpace(reference) == "" {
		return s
	}

	items, err := m.gw.FetchItemsForReference(ctx, reference)
	if err != nil {
		if m.logg != nil {
			m.logg.Error(ctx, "loading items for reference", err)
		}
		items = nil
	}
	s.Items = items
	s.Phase = PhaseItemsLoaded
	return s
}

// SelectItem binds the code and description matching the chosen label. A
// label that no longer matches the loaded list leaves the selection unset.
func (m *Machine) SelectItem(s State, label string) State {
	s.SelectedLabel = ""
	s.SelectedCode = ""
	s.SelectedDescription = ""

	for _, item := range s.Items {
		if ItemLabel(item) == label {
			s.SelectedLabel = label
			s.SelectedCode = item.Code
			s.SelectedDescription = item.Description
			s.Phase = PhaseItemSelected
			return s
		}
	}
	if s.Phase == PhaseItemSelected {
		s.Phase = PhaseItemsLoaded
	}
	return s
}

// Submit validates every field, then inserts the suggestion with the seller
// taken from the authenticated session. All violations are collected before
// reporting; a valid submit that succeeds resets the form immediately and
// arms the success window.
func (m *Machine) Submit(ctx context.Context, s State, seller string) (State, error) {
	if err := m.validate(s); err != nil {
		s.Phase = PhaseValidationFailed
		return s, err
	}

	input := gateway.SuggestionInput{
		Reference:       strings.TrimSpace(s.Reference),
		Quantity:        s.Quantity,
		Brand:           strings.TrimSpace(s.Brand),
		Type:            s.Type,
		Comment:         strings.TrimSpace(s.Comment),
		ItemCode:        s.SelectedCode,
		ItemDescription: s.SelectedDescription,
		Seller:          seller,
	}
	if err := m.gw.InsertSuggestion(ctx, input); err != nil {
		if m.logg != nil {
			m.logg.Error(ctx, "saving suggestion", err)
		}
		s.Phase = PhaseSubmitFailed
		return s, err
	}

	cleared := m.Clear(s)
	cleared.Phase = PhaseSaved
	cleared.SavedAt = m.clock()
	return cleared, nil
}

func (m *Machine) validate(s State) error {
	var err error
	if strings.TrimSpace(s.Reference) == "" {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "Informe a Referência."))
	}
	if len(s.Items) == 0 {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "Nenhum item foi encontrado para esta Referência. Revise a referência."))
	}
	if len(s.Items) > 0 && s.SelectedCode == "" {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "Selecione o Código Item / Descrição do Item."))
	}
	if s.Quantity < 1 || s.Quantity > 1000 {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "Selecione a Quantidade."))
	}
	if strings.TrimSpace(s.Brand) == "" {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "Informe a Marca."))
	}
	if !s.Type.IsValid() {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "Selecione o Tipo Sugestão."))
	}
	return err
}

// Clear resets every data field. Safe to call in any phase.
func (m *Machine) Clear(State) State {
	return State{Phase: PhaseIdle}
}

// SuccessVisible reports whether the saved confirmation should still show.
func (s State) SuccessVisible(now time.Time) bool {
	return s.Phase == PhaseSaved && now.Sub(s.SavedAt) < successWindow
}

// Violations unpacks the individual validation messages from a Submit error.
func Violations(err error) []string {
	var messages []string
	for _, e := range multierr.Errors(err) {
		if typed := pkgerrors.As(e); typed != nil {
			messages = append(messages, typed.Message())
			continue
		}
		messages = append(messages, e.Error())
	}
	return messages
}
