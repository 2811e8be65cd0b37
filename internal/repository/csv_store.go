package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/iliyamo/banquet-seating/internal/model"
	"github.com/iliyamo/banquet-seating/internal/seating"
)

// CSVGuestStore keeps the guest list in a single CSV file with a header
// row.  Every save rewrites the whole file.
type CSVGuestStore struct {
	path string
}

// NewCSVGuestStore binds a store to path.  The file need not exist yet.
func NewCSVGuestStore(path string) *CSVGuestStore {
	return &CSVGuestStore{path: path}
}

// Path returns the bound file.
func (s *CSVGuestStore) Path() string { return s.path }

// Load reads every row.  A missing or unparsable file is reported as
// seating.ErrStoreUnavailable; an empty file is an empty collection.
func (s *CSVGuestStore) Load(ctx context.Context) (model.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, seating.Unavailable(s.path, err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, seating.Unavailable(s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return model.Collection{}, nil
	}
	if err != nil {
		return nil, seating.Unavailable(s.path, err)
	}

	dec := newRowDecoder(header)
	out := model.Collection{}
	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, seating.Unavailable(s.path, err)
		}
		if blank(rec) {
			continue
		}
		out = append(out, dec.decode(rec, line))
	}
	dec.report(s.path)
	return out, nil
}

// Save overwrites the file with c.
func (s *CSVGuestStore) Save(ctx context.Context, c model.Collection) error {
	if err := ctx.Err(); err != nil {
		return seating.WriteFailed(s.path, err)
	}
	err := writeAtomic(s.path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(model.Columns); err != nil {
			return err
		}
		for _, r := range c {
			if err := cw.Write(encodeRow(r)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return seating.WriteFailed(s.path, err)
	}
	return nil
}
