// Package service is the action boundary.  Every gesture is an Event
// applied to an immutable State by Apply, a pure function; the
// SeatingService loads the state, applies the event and persists what
// changed.
package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/iliyamo/banquet-seating/internal/identity"
	"github.com/iliyamo/banquet-seating/internal/model"
	"github.com/iliyamo/banquet-seating/internal/numbering"
	"github.com/iliyamo/banquet-seating/internal/seating"
)

// Event actions.
const (
	ActionSwap     = "swap"     // exchange the occupants of FromID and ToID
	ActionEdit     = "edit"     // select TableID for editing
	ActionClear    = "clear"    // drop the selection
	ActionSave     = "save"     // replace TableID's guests with Guests under Group
	ActionRenumber = "renumber" // migrate data ids to Scheme
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrReadOnly      = errors.New("view mode is read-only")
	ErrWrongMode     = errors.New("action not available in this mode")
)

// Event is one gesture.  Table ids are display ids.
type Event struct {
	Action  string           `json:"action"`
	FromID  int              `json:"fromId,omitempty"`
	ToID    int              `json:"toId,omitempty"`
	TableID int              `json:"tableId,omitempty"`
	Group   string           `json:"group_name,omitempty"`
	Guests  []model.GuestRow `json:"guests,omitempty"`
	Scheme  string           `json:"scheme,omitempty"`
}

// State is the context of one action: the view and the guest snapshot.
// Apply never modifies the State it receives.
type State struct {
	View   model.ViewState
	Guests model.Collection
}

// Change describes a committed mutation for the audit trail.
type Change struct {
	Action     string
	DisplayIDs []int
	DataIDs    []int
	Group      string
}

// Transition is the result of Apply.
type Transition struct {
	Next          State
	GuestsChanged bool
	ViewChanged   bool
	Change        *Change
}

// Apply maps (state, event) to the next state.  Identifier and mode
// errors are returned before anything is computed, so a rejected event
// never yields a partial state.
func Apply(st State, ev Event) (Transition, error) {
	res, err := identity.ForView(st.View)
	if err != nil {
		return Transition{}, err
	}
	switch ev.Action {
	case ActionSwap:
		return applySwap(st, res, ev)
	case ActionEdit:
		return applySelect(st, res, ev)
	case ActionClear:
		return Transition{Next: State{View: st.View.WithoutSelection(), Guests: st.Guests}, ViewChanged: st.View.SelectedID != nil}, nil
	case ActionSave:
		return applySave(st, res, ev)
	case ActionRenumber:
		return applyRenumber(st, ev)
	}
	return Transition{}, fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
}

func applySwap(st State, res *identity.Resolver, ev Event) (Transition, error) {
	if st.View.Mode == model.ModeView {
		return Transition{}, ErrReadOnly
	}
	from, err := res.DisplayToData(ev.FromID)
	if err != nil {
		return Transition{}, err
	}
	to, err := res.DisplayToData(ev.ToID)
	if err != nil {
		return Transition{}, err
	}
	if from == to {
		return Transition{Next: st}, nil
	}
	return Transition{
		Next:          State{View: st.View, Guests: seating.Swap(st.Guests, from, to)},
		GuestsChanged: true,
		Change:        &Change{Action: ActionSwap, DisplayIDs: []int{ev.FromID, ev.ToID}, DataIDs: []int{from, to}},
	}, nil
}

func applySelect(st State, res *identity.Resolver, ev Event) (Transition, error) {
	if st.View.Mode != model.ModeEdit {
		return Transition{}, fmt.Errorf("%w: select needs %s mode", ErrWrongMode, model.ModeEdit)
	}
	if _, err := res.DisplayToData(ev.TableID); err != nil {
		return Transition{}, err
	}
	return Transition{
		Next:        State{View: st.View.WithSelection(ev.TableID), Guests: st.Guests},
		ViewChanged: true,
	}, nil
}

func applySave(st State, res *identity.Resolver, ev Event) (Transition, error) {
	if st.View.Mode == model.ModeView {
		return Transition{}, ErrReadOnly
	}
	id, err := res.DisplayToData(ev.TableID)
	if err != nil {
		return Transition{}, err
	}
	return Transition{
		Next:          State{View: st.View, Guests: seating.ReplaceTable(st.Guests, id, ev.Group, ev.Guests)},
		GuestsChanged: true,
		Change:        &Change{Action: ActionSave, DisplayIDs: []int{ev.TableID}, DataIDs: []int{id}, Group: ev.Group},
	}, nil
}

func applyRenumber(st State, ev Event) (Transition, error) {
	from, err := numbering.Lookup(st.View.Scheme)
	if err != nil {
		return Transition{}, err
	}
	to, err := numbering.Lookup(ev.Scheme)
	if err != nil {
		return Transition{}, err
	}
	idMap, err := identity.Remap(from, to, st.View.Rows, st.View.Cols)
	if err != nil {
		return Transition{}, err
	}
	view := st.View
	view.Scheme = to.Name

	// DataIDs lists old ids in ascending order
	change := &Change{Action: ActionRenumber}
	for old := range idMap {
		change.DataIDs = append(change.DataIDs, old)
	}
	sort.Ints(change.DataIDs)
	return Transition{
		Next:          State{View: view, Guests: seating.RenumberAll(st.Guests, idMap)},
		GuestsChanged: len(idMap) > 0,
		ViewChanged:   view.Scheme != st.View.Scheme,
		Change:        change,
	}, nil
}

// ViewUpdate carries the fields of a view change.  Nil fields keep
// their current value.
type ViewUpdate struct {
	Rows   *int    `json:"rows"`
	Cols   *int    `json:"cols"`
	Scheme *string `json:"scheme"`
	Mode   *string `json:"mode"`
}

// ErrInvalidMode is returned for modes other than Move, Edit and View.
var ErrInvalidMode = errors.New("invalid mode")

// UpdateView validates upd against v and returns the new view.  A
// change of mode away from Edit, or of the grid size, clears the
// selection.
func UpdateView(v model.ViewState, upd ViewUpdate) (model.ViewState, error) {
	next := v
	if upd.Rows != nil {
		next.Rows = *upd.Rows
	}
	if upd.Cols != nil {
		next.Cols = *upd.Cols
	}
	if err := identity.ValidateGrid(next.Rows, next.Cols); err != nil {
		return v, err
	}
	if upd.Scheme != nil {
		s, err := numbering.Lookup(*upd.Scheme)
		if err != nil {
			return v, err
		}
		next.Scheme = s.Name
	}
	if upd.Mode != nil {
		m := model.Mode(*upd.Mode)
		if !m.Valid() {
			return v, fmt.Errorf("%w: %q", ErrInvalidMode, *upd.Mode)
		}
		next.Mode = m
	}
	if next.Mode != model.ModeEdit || next.Rows != v.Rows || next.Cols != v.Cols {
		next = next.WithoutSelection()
	}
	return next, nil
}
