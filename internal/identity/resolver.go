// Package identity translates between the display identifier of a
// table (its sequential grid number, shown to users) and its data
// identifier (the table_number guests are stored under, produced by the
// active numbering scheme).  The resolver is the only place where the
// two identifier spaces meet.
package identity

import (
	"errors"
	"fmt"

	"github.com/iliyamo/banquet-seating/internal/model"
	"github.com/iliyamo/banquet-seating/internal/numbering"
)

// Grid dimension bounds.
const (
	MinDim = 1
	MaxDim = 20
)

var (
	// ErrOutOfRange is returned for identifiers outside [1, rows*cols].
	ErrOutOfRange = errors.New("table identifier out of range")
	// ErrInvalidGrid is returned for rows or cols outside [MinDim, MaxDim].
	ErrInvalidGrid = errors.New("invalid grid dimensions")
)

// Slot is one grid cell with both of its identifiers.
type Slot struct {
	Row       int `json:"row"`
	Col       int `json:"col"`
	DisplayID int `json:"display_id"`
	DataID    int `json:"data_id"`
}

// Resolver composes a numbering scheme with fixed grid dimensions.
type Resolver struct {
	rows   int
	cols   int
	scheme numbering.Scheme
}

// ValidateGrid checks rows and cols against the configured bounds.
func ValidateGrid(rows, cols int) error {
	if rows < MinDim || rows > MaxDim || cols < MinDim || cols > MaxDim {
		return fmt.Errorf("%w: %dx%d (each must be %d-%d)", ErrInvalidGrid, rows, cols, MinDim, MaxDim)
	}
	return nil
}

// New builds a resolver for a rows x cols grid numbered by scheme.
func New(rows, cols int, scheme numbering.Scheme) (*Resolver, error) {
	if err := ValidateGrid(rows, cols); err != nil {
		return nil, err
	}
	if scheme.Func == nil {
		return nil, fmt.Errorf("%w: scheme %q has no numbering function", numbering.ErrUnknownScheme, scheme.Name)
	}
	return &Resolver{rows: rows, cols: cols, scheme: scheme}, nil
}

// ForView builds the resolver described by a view state.
func ForView(v model.ViewState) (*Resolver, error) {
	s, err := numbering.Lookup(v.Scheme)
	if err != nil {
		return nil, err
	}
	return New(v.Rows, v.Cols, s)
}

func (r *Resolver) Rows() int                { return r.rows }
func (r *Resolver) Cols() int                { return r.cols }
func (r *Resolver) Size() int                { return r.rows * r.cols }
func (r *Resolver) Scheme() numbering.Scheme { return r.scheme }

// DisplayToData maps a display id to the data id stored for that slot.
// Under the sequential scheme this is the identity.
func (r *Resolver) DisplayToData(displayID int) (int, error) {
	if displayID < 1 || displayID > r.Size() {
		return 0, fmt.Errorf("%w: display id %d not in [1, %d]", ErrOutOfRange, displayID, r.Size())
	}
	idx := displayID - 1
	return r.scheme.Func(idx/r.cols, idx%r.cols, r.cols), nil
}

// DataToDisplay maps a data id back to the display id of its slot.
func (r *Resolver) DataToDisplay(dataID int) (int, error) {
	if dataID < 1 || dataID > r.Size() {
		return 0, fmt.Errorf("%w: data id %d not in [1, %d]", ErrOutOfRange, dataID, r.Size())
	}
	row, col, ok := r.position(dataID)
	if !ok {
		return 0, fmt.Errorf("%w: data id %d has no slot under %s", ErrOutOfRange, dataID, r.scheme.Name)
	}
	return numbering.SequentialID(row, col, r.cols), nil
}

func (r *Resolver) position(dataID int) (int, int, bool) {
	if r.scheme.Inverse != nil {
		row, col, ok := r.scheme.Inverse(dataID, r.cols)
		if ok && row >= 0 && row < r.rows && col >= 0 && col < r.cols {
			return row, col, true
		}
		return 0, 0, false
	}
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			if r.scheme.Func(row, col, r.cols) == dataID {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}

// Slots enumerates every grid cell in row-major order.
func (r *Resolver) Slots() []Slot {
	out := make([]Slot, 0, r.Size())
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			out = append(out, Slot{
				Row:       row,
				Col:       col,
				DisplayID: numbering.SequentialID(row, col, r.cols),
				DataID:    r.scheme.Func(row, col, r.cols),
			})
		}
	}
	return out
}

// DisplayToData is the functional form of Resolver.DisplayToData.
func DisplayToData(displayID, rows, cols int, scheme numbering.Scheme) (int, error) {
	r, err := New(rows, cols, scheme)
	if err != nil {
		return 0, err
	}
	return r.DisplayToData(displayID)
}

// Remap returns the old-id to new-id mapping that moves every slot's
// data id from one scheme to another.  Ids that do not change are left
// out, so the map is empty when from and to agree.
func Remap(from, to numbering.Scheme, rows, cols int) (map[int]int, error) {
	src, err := New(rows, cols, from)
	if err != nil {
		return nil, err
	}
	dst, err := New(rows, cols, to)
	if err != nil {
		return nil, err
	}
	out := make(map[int]int)
	srcSlots, dstSlots := src.Slots(), dst.Slots()
	for i := range srcSlots {
		if srcSlots[i].DataID != dstSlots[i].DataID {
			out[srcSlots[i].DataID] = dstSlots[i].DataID
		}
	}
	return out, nil
}
