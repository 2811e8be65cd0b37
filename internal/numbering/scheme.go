// Package numbering maps grid positions to table identifiers.  Each
// scheme is a pure function of (row, col, cols); adding a scheme means
// writing one such function and registering it.
package numbering

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Func maps a zero-based grid position to a table identifier >= 1.
type Func func(r, c, cols int) int

// InverseFunc recovers the grid position of a table identifier.  ok is
// false when id is not produced by the scheme for the given cols.
type InverseFunc func(id, cols int) (r, c int, ok bool)

// Scheme is a named numbering function with an optional closed-form
// inverse.  Schemes without an inverse are inverted by search.
type Scheme struct {
	Name    string
	Label   string
	Func    Func
	Inverse InverseFunc
}

// Registered scheme names.
const (
	Sequential   = "sequential"
	OddEvenSplit = "odd_even_split"
)

// ErrUnknownScheme is returned by Lookup for unregistered names.
var ErrUnknownScheme = errors.New("unknown numbering scheme")

var registry = map[string]Scheme{
	Sequential: {
		Name:    Sequential,
		Label:   "Sequential",
		Func:    SequentialID,
		Inverse: sequentialPosition,
	},
	OddEvenSplit: {
		Name:    OddEvenSplit,
		Label:   "Odd/Even Split",
		Func:    OddEvenSplitID,
		Inverse: oddEvenSplitPosition,
	},
}

// aliases accepted from config files, query strings and the CLI.
var aliases = map[string]string{
	"seq":            Sequential,
	"odd/even split": OddEvenSplit,
	"odd-even":       OddEvenSplit,
	"oddeven":        OddEvenSplit,
	"odd_even":       OddEvenSplit,
	"odd-even-split": OddEvenSplit,
}

// Lookup returns the scheme registered under name.  Matching is
// case-insensitive and accepts the labels shown to users.
func Lookup(name string) (Scheme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Sequential
	}
	if a, ok := aliases[key]; ok {
		key = a
	}
	if s, ok := registry[key]; ok {
		return s, nil
	}
	for _, s := range registry {
		if strings.EqualFold(s.Label, key) {
			return s, nil
		}
	}
	return Scheme{}, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Scheme {
	s, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Names lists registered scheme names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// SequentialID numbers tables left to right, top to bottom.
func SequentialID(r, c, cols int) int {
	return r*cols + c + 1
}

func sequentialPosition(id, cols int) (int, int, bool) {
	if id < 1 || cols < 1 {
		return 0, 0, false
	}
	idx := id - 1
	return idx / cols, idx % cols, true
}

// OddEvenSplitID numbers each row independently: the row's range
// [r*cols+1, (r+1)*cols] is split into its odd values followed by its
// even values, and column c takes the c-th value of that sequence.
// With cols=4 row 0 reads 1, 3, 2, 4.
func OddEvenSplitID(r, c, cols int) int {
	start := r*cols + 1
	// number of odd values in [start, start+cols)
	odds := cols / 2
	if cols%2 == 1 && start%2 == 1 {
		odds++
	}
	firstOdd, firstEven := start, start+1
	if start%2 == 0 {
		firstOdd, firstEven = start+1, start
	}
	if c < odds {
		return firstOdd + 2*c
	}
	return firstEven + 2*(c-odds)
}

func oddEvenSplitPosition(id, cols int) (int, int, bool) {
	if id < 1 || cols < 1 {
		return 0, 0, false
	}
	r := (id - 1) / cols
	start := r*cols + 1
	odds := cols / 2
	if cols%2 == 1 && start%2 == 1 {
		odds++
	}
	firstOdd, firstEven := start, start+1
	if start%2 == 0 {
		firstOdd, firstEven = start+1, start
	}
	if id%2 == firstOdd%2 {
		return r, (id - firstOdd) / 2, true
	}
	return r, odds + (id-firstEven)/2, true
}
