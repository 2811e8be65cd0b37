package model

// Mode is the interaction mode of the grid surface.
type Mode string

const (
    ModeMove Mode = "Move" // drag-and-drop swaps
    ModeEdit Mode = "Edit" // click to select a table for editing
    ModeView Mode = "View" // read-only
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
    switch m {
    case ModeMove, ModeEdit, ModeView:
        return true
    }
    return false
}

// ViewState is the per-action context threaded through every action:
// grid dimensions, the active numbering scheme, the interaction mode
// and the selected table.  It is a value type; actions return a new
// ViewState instead of mutating the one they received.
//
// Fields:
//  Rows       – grid rows (1..20).
//  Cols       – grid columns (1..20).
//  Scheme     – numbering scheme name used for data identifiers.
//  Mode       – Move, Edit or View.
//  SelectedID – selected display id, only meaningful in Edit mode.
type ViewState struct {
    Rows       int    `json:"rows"`
    Cols       int    `json:"cols"`
    Scheme     string `json:"scheme"`
    Mode       Mode   `json:"mode"`
    SelectedID *int   `json:"selectedId"`
}

// WithSelection returns a copy of v with the given display id selected.
func (v ViewState) WithSelection(id int) ViewState {
    sel := id
    v.SelectedID = &sel
    return v
}

// WithoutSelection returns a copy of v with no selected table.
func (v ViewState) WithoutSelection() ViewState {
    v.SelectedID = nil
    return v
}
