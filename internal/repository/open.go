package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/banquet-seating/internal/model"
)

// GuestStore is the load/save contract every guest store satisfies.
type GuestStore interface {
	Load(ctx context.Context) (model.Collection, error)
	Save(ctx context.Context, c model.Collection) error
}

// StoreOptions selects and configures a guest store.
type StoreOptions struct {
	Driver    string // csv | xlsx | mysql | memory
	CSVPath   string
	XLSXPath  string
	XLSXSheet string
	DB        *sql.DB // required for mysql
}

// OpenGuestStore builds the store named by opts.Driver.  The mysql
// driver also makes sure the guest_list table exists.
func OpenGuestStore(ctx context.Context, opts StoreOptions) (GuestStore, error) {
	switch opts.Driver {
	case "", "csv":
		return NewCSVGuestStore(opts.CSVPath), nil
	case "xlsx":
		return NewXLSXGuestStore(opts.XLSXPath, opts.XLSXSheet), nil
	case "memory":
		return NewMemoryGuestStore(nil), nil
	case "mysql":
		if opts.DB == nil {
			return nil, fmt.Errorf("mysql store: no database handle")
		}
		s := NewMySQLGuestStore(opts.DB)
		if err := s.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("mysql store: ensure schema: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
}
