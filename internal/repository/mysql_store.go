package repository // mysql guest store

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"fmt"
	"strings"

	"github.com/iliyamo/banquet-seating/internal/model"
	"github.com/iliyamo/banquet-seating/internal/seating"
)

// guestTable is the MySQL table backing the guest list.
const guestTable = "guest_list"

// insertBatch caps the rows per INSERT statement.
const insertBatch = 500

// MySQLGuestStore keeps the guest list in the guest_list table.  Save
// replaces every row inside one transaction, so a failed save leaves the
// previous list in place.
type MySQLGuestStore struct {
	db *sql.DB
}

// NewMySQLGuestStore constructs a store with the given DB handle.
func NewMySQLGuestStore(db *sql.DB) *MySQLGuestStore {
	return &MySQLGuestStore{db: db}
}

// EnsureSchema creates the guest_list table when it does not exist.
func (s *MySQLGuestStore) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS guest_list (
	             id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	             table_number INT NOT NULL DEFAULT 0,
	             seat         INT NOT NULL DEFAULT 0,
	             name         VARCHAR(255) NOT NULL DEFAULT '',
	             menu         VARCHAR(64)  NOT NULL DEFAULT '',
	             gp_id        INT NOT NULL DEFAULT 0,
	             gp_name      VARCHAR(255) NOT NULL DEFAULT '',
	             KEY idx_guest_table (table_number)
	           ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	_, err := s.db.ExecContext(ctx, q)
	return err
}

// Load retrieves every row in insertion order.
func (s *MySQLGuestStore) Load(ctx context.Context) (model.Collection, error) {
	const q = `SELECT table_number, seat, name, menu, gp_id, gp_name
	           FROM guest_list
	           ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, seating.Unavailable(guestTable, err)
	}
	defer rows.Close()

	out := model.Collection{}
	for rows.Next() {
		var r model.GuestRow
		if err := rows.Scan(&r.TableNumber, &r.Seat, &r.Name, &r.Menu, &r.GroupID, &r.GroupName); err != nil {
			return nil, seating.Unavailable(guestTable, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, seating.Unavailable(guestTable, err)
	}
	return out, nil
}

// Save deletes every row and inserts c in batches within a transaction.
func (s *MySQLGuestStore) Save(ctx context.Context, c model.Collection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return seating.WriteFailed(guestTable, err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM guest_list`); err != nil {
		return seating.WriteFailed(guestTable, err)
	}
	for start := 0; start < len(c); start += insertBatch {
		end := start + insertBatch
		if end > len(c) {
			end = len(c)
		}
		q, args := insertStatement(c[start:end])
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return seating.WriteFailed(guestTable, fmt.Errorf("insert rows %d-%d: %w", start, end-1, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return seating.WriteFailed(guestTable, err)
	}
	return nil
}

// insertStatement builds one multi-row INSERT for rows.
func insertStatement(rows []model.GuestRow) (string, []interface{}) {
	var b strings.Builder
	b.WriteString(`INSERT INTO guest_list (table_number, seat, name, menu, gp_id, gp_name) VALUES `)
	args := make([]interface{}, 0, len(rows)*6)
	for i, r := range rows {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?)")
		args = append(args, r.TableNumber, r.Seat, r.Name, r.Menu, r.GroupID, r.GroupName)
	}
	return b.String(), args
}
