// Package repository holds the guest stores (CSV, XLSX, MySQL, memory),
// the view-state stores (Redis, memory) and the report cache generation
// counter.  Guest stores classify their failures with the seating
// package's StoreError so handlers can tell an unreadable store from a
// failed save.
package repository

import "errors"

// ErrUnknownDriver is returned by OpenGuestStore for an unrecognized
// STORE_DRIVER value.  Callers should fail at startup.
var ErrUnknownDriver = errors.New("unknown store driver")

// ErrNoViewState is returned by view stores that have nothing persisted
// yet.  Callers fall back to the configured defaults.
var ErrNoViewState = errors.New("no view state stored")
