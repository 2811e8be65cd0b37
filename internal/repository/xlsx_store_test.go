package repository

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/banquet-seating/internal/model"
	"github.com/iliyamo/banquet-seating/internal/seating"
)

func TestXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guest_list.xlsx")
	s := NewXLSXGuestStore(path, "Guests")
	ctx := context.Background()

	want := model.Collection{
		{TableNumber: 1, Seat: 1, Name: "Ali", Menu: "Ayam", GroupID: 2, GroupName: "Kelab"},
		{TableNumber: 2, Seat: 1, Name: "Chong", Menu: "Vegetarian", GroupName: "Pejabat"},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip:\n got %+v\nwant %+v", got, want)
	}
}

func TestXLSXLoadHandBuiltWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seating.xlsx")
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "name")
	f.SetCellValue("Sheet1", "B1", "table_number")
	f.SetCellValue("Sheet1", "C1", "menu")
	f.SetCellValue("Sheet1", "A2", "Devi")
	f.SetCellValue("Sheet1", "B2", 7)
	f.SetCellValue("Sheet1", "C2", "Ikan")
	f.SetCellValue("Sheet1", "A4", "Eng")
	f.SetCellValue("Sheet1", "B4", "n/a")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	got, err := NewXLSXGuestStore(path, "Sheet1").Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := model.Collection{
		{TableNumber: 7, Name: "Devi", Menu: "Ikan"},
		{TableNumber: 0, Name: "Eng"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}

	_, err = NewXLSXGuestStore(path, "Missing").Load(context.Background())
	if !errors.Is(err, seating.ErrStoreUnavailable) {
		t.Fatalf("missing sheet: got %v, want ErrStoreUnavailable", err)
	}
}

func TestXLSXLoadMissingWorkbook(t *testing.T) {
	_, err := NewXLSXGuestStore(filepath.Join(t.TempDir(), "none.xlsx"), "").Load(context.Background())
	if !errors.Is(err, seating.ErrStoreUnavailable) {
		t.Fatalf("got %v, want ErrStoreUnavailable", err)
	}
}
