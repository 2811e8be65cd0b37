package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iliyamo/banquet-seating/internal/model"
)

func TestInsertStatement(t *testing.T) {
	q, args := insertStatement(model.Collection{
		{TableNumber: 1, Seat: 1, Name: "a"},
		{TableNumber: 2, Seat: 3, Name: "b", GroupName: "g"},
	})
	if strings.Count(q, "(?, ?, ?, ?, ?, ?)") != 2 {
		t.Errorf("placeholders: %s", q)
	}
	if len(args) != 12 || args[6] != 2 || args[11] != "g" {
		t.Errorf("args: %v", args)
	}
}

func TestMemoryGuestStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryGuestStore(nil)
	c := model.Collection{{TableNumber: 1, Name: "a"}}
	if err := s.Save(ctx, c); err != nil {
		t.Fatal(err)
	}
	c[0].Name = "changed"
	got, _ := s.Load(ctx)
	if got[0].Name != "a" {
		t.Fatalf("store aliased caller slice: %+v", got)
	}
}

func TestMemoryViewStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryViewStore()
	if _, err := s.Get(ctx); !errors.Is(err, ErrNoViewState) {
		t.Fatalf("empty store: got %v, want ErrNoViewState", err)
	}
	v := model.ViewState{Rows: 3, Cols: 4, Scheme: "sequential", Mode: model.ModeEdit}.WithSelection(5)
	if err := s.Put(ctx, v); err != nil {
		t.Fatal(err)
	}
	*v.SelectedID = 9
	got, err := s.Get(ctx)
	if err != nil || got.SelectedID == nil || *got.SelectedID != 5 {
		t.Fatalf("Get: %+v, %v", got, err)
	}
}

func TestOpenGuestStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenGuestStore(ctx, StoreOptions{Driver: "csv", CSVPath: "x.csv"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*CSVGuestStore); !ok {
		t.Errorf("csv driver: got %T", s)
	}
	if _, err := OpenGuestStore(ctx, StoreOptions{Driver: "sheets"}); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("unknown driver: got %v", err)
	}
	if _, err := OpenGuestStore(ctx, StoreOptions{Driver: "mysql"}); err == nil {
		t.Error("mysql without db should fail")
	}
}

func TestNilGeneration(t *testing.T) {
	g := NewGeneration(nil, "k")
	if n, err := g.Current(context.Background()); n != 0 || err != nil {
		t.Fatalf("Current: %d, %v", n, err)
	}
	if err := g.Bump(context.Background()); err != nil {
		t.Fatalf("Bump: %v", err)
	}
}
