package seating_test

import (
	"testing"

	"github.com/iliyamo/banquet-seating/internal/identity"
	"github.com/iliyamo/banquet-seating/internal/model"
	"github.com/iliyamo/banquet-seating/internal/numbering"
	"github.com/iliyamo/banquet-seating/internal/seating"
)

func TestBuildCellsSequential(t *testing.T) {
	res, err := identity.New(2, 5, numbering.MustLookup(numbering.Sequential))
	if err != nil {
		t.Fatalf("identity.New: %v", err)
	}
	cells := seating.BuildCells(res, sampleCollection())
	if len(cells) != 10 {
		t.Fatalf("got %d cells, want 10", len(cells))
	}

	c3 := cells[2]
	if c3.ID != 3 || !c3.Occupied || c3.Group != "Keluarga" || c3.Count != 5 {
		t.Errorf("cell 3: %+v", c3)
	}
	c7 := cells[6]
	if c7.Occupied || c7.Group != "" || c7.Count != 0 {
		t.Errorf("cell 7 should be vacant: %+v", c7)
	}
}

func TestBuildCellsOddEvenTranslatesIDs(t *testing.T) {
	res, _ := identity.New(1, 4, numbering.MustLookup(numbering.OddEvenSplit))
	c := model.Collection{
		{TableNumber: 3, Name: "x"},
		{TableNumber: 2, Name: "y", GroupName: "  "},
	}
	cells := seating.BuildCells(res, c)

	// display 2 holds data 3, display 3 holds data 2
	if cells[1].ID != 2 || cells[1].DataID != 3 || cells[1].Count != 1 {
		t.Errorf("display 2: %+v", cells[1])
	}
	if cells[2].ID != 3 || cells[2].DataID != 2 || cells[2].Group != seating.UnknownGroup {
		t.Errorf("display 3: %+v", cells[2])
	}
	if cells[0].Occupied || cells[3].Occupied {
		t.Errorf("displays 1 and 4 should be vacant: %+v %+v", cells[0], cells[3])
	}
}

func TestFilterGuests(t *testing.T) {
	c := model.Collection{
		{TableNumber: 2, Seat: 3, Name: "Zul"},
		{TableNumber: 1, Seat: 2, Name: "amir"},
		{TableNumber: 2, Seat: 1, Name: "Amirah"},
		{TableNumber: 1, Seat: 1, Name: "Bakar"},
	}

	all := seating.FilterGuests(c, seating.GuestFilter{})
	wantNames := []string{"Bakar", "amir", "Amirah", "Zul"}
	for i, r := range all {
		if r.Name != wantNames[i] {
			t.Errorf("all[%d]: got %s, want %s", i, r.Name, wantNames[i])
		}
	}

	table := 2
	amir := seating.FilterGuests(c, seating.GuestFilter{Table: &table, Search: "AMIR"})
	if len(amir) != 1 || amir[0].Name != "Amirah" {
		t.Errorf("table 2 search amir: got %+v", amir)
	}

	none := seating.FilterGuests(c, seating.GuestFilter{Search: "nobody"})
	if len(none) != 0 {
		t.Errorf("search nobody: got %d rows", len(none))
	}
}
