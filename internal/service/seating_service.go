package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/iliyamo/banquet-seating/internal/identity"
	"github.com/iliyamo/banquet-seating/internal/model"
	"github.com/iliyamo/banquet-seating/internal/queue"
	"github.com/iliyamo/banquet-seating/internal/report"
	"github.com/iliyamo/banquet-seating/internal/repository"
	"github.com/iliyamo/banquet-seating/internal/seating"
	"github.com/iliyamo/banquet-seating/internal/simulation"
)

// GuestStore loads and saves the whole guest collection.
type GuestStore interface {
	Load(ctx context.Context) (model.Collection, error)
	Save(ctx context.Context, c model.Collection) error
}

// ViewStore persists the view toggle.
type ViewStore interface {
	Get(ctx context.Context) (model.ViewState, error)
	Put(ctx context.Context, v model.ViewState) error
}

// EventPublisher emits seating.changed events.
type EventPublisher interface {
	PublishSeatingChanged(ctx context.Context, ev queue.SeatingChangedEvent) error
}

// Invalidator drops cached reports.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// Options wires the optional collaborators of a SeatingService.
type Options struct {
	Defaults  model.ViewState // used when no view is stored
	Publisher EventPublisher  // nil disables the audit trail
	Cache     Invalidator     // nil disables invalidation
	Now       func() time.Time
}

// SeatingService runs one action at a time against the stores.
type SeatingService struct {
	guests GuestStore
	views  ViewStore
	opts   Options
}

// New builds a SeatingService.
func New(guests GuestStore, views ViewStore, opts Options) *SeatingService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Defaults.Mode == "" {
		opts.Defaults.Mode = model.ModeMove
	}
	return &SeatingService{guests: guests, views: views, opts: opts}
}

// Snapshot is the state read at the start of an action, with any
// non-fatal warnings raised while reading it.
type Snapshot struct {
	State
	Warnings []string
	loadErr  error
	viewErr  error // set when View holds the defaults because the view store failed
}

// Snapshot reads the view and the guest collection.  An unavailable
// guest store yields an empty collection and a warning; an unavailable
// view store yields the default view and a warning.
func (s *SeatingService) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	snap.View, snap.viewErr = s.view(ctx, &snap.Warnings)

	guests, err := s.guests.Load(ctx)
	switch {
	case err == nil:
		snap.Guests = guests
	case errors.Is(err, seating.ErrStoreUnavailable):
		log.Printf("seating: %v; using empty guest list", err)
		snap.Guests = model.Collection{}
		snap.Warnings = append(snap.Warnings, "guest list unavailable, showing an empty list: "+err.Error())
		snap.loadErr = err
	default:
		return Snapshot{}, err
	}
	return snap, nil
}

// view returns the stored view, or the defaults when nothing usable is
// stored.  The error is non-nil only when the view store itself failed,
// in which case the true numbering of the stored guests is unknown.
func (s *SeatingService) view(ctx context.Context, warnings *[]string) (model.ViewState, error) {
	v, err := s.views.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNoViewState) {
			return s.opts.Defaults, nil
		}
		log.Printf("seating: view store: %v; using defaults", err)
		*warnings = append(*warnings, "view settings unavailable, using defaults")
		return s.opts.Defaults, seating.Unavailable(viewStoreName, err)
	}
	if _, err := identity.ForView(v); err != nil || !v.Mode.Valid() {
		log.Printf("seating: stored view %+v is invalid; using defaults", v)
		return s.opts.Defaults, nil
	}
	return v, nil
}

// viewStoreName labels view store failures in StoreError.
const viewStoreName = "view state"

// Result is the outcome of Dispatch.
type Result struct {
	State    State
	Changed  bool
	Warnings []string
}

// Dispatch applies ev and persists the result.  When a save fails the
// action is not committed: the stores keep their previous contents and
// the audit trail does not see it.  Nothing is written when the view
// could not be read, since display ids cannot be translated without it.
func (s *SeatingService) Dispatch(ctx context.Context, ev Event) (Result, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Result{}, err
	}
	tr, err := Apply(snap.State, ev)
	if err != nil {
		return Result{}, err
	}

	// Display ids were translated under the default view; the stored
	// guests may be numbered differently, so nothing may be written.
	if snap.viewErr != nil && (tr.GuestsChanged || tr.ViewChanged) {
		return Result{}, snap.viewErr
	}
	// A store that exists but cannot be read must not be overwritten
	// with the empty substitute.
	if tr.GuestsChanged && snap.loadErr != nil && !errors.Is(snap.loadErr, fs.ErrNotExist) {
		return Result{}, snap.loadErr
	}

	res := Result{State: tr.Next, Warnings: snap.Warnings}
	switch {
	case tr.GuestsChanged && tr.ViewChanged:
		// Renumber: the scheme and the data ids commit together.  The view
		// goes first and is restored when the guest save fails.
		if err := s.views.Put(ctx, tr.Next.View); err != nil {
			log.Printf("seating: %s view not saved: %v", ev.Action, err)
			return Result{}, seating.WriteFailed(viewStoreName, err)
		}
		if err := s.guests.Save(ctx, tr.Next.Guests); err != nil {
			log.Printf("seating: %s not saved: %v", ev.Action, err)
			if rerr := s.views.Put(ctx, snap.View); rerr != nil {
				log.Printf("seating: view not restored after failed save: %v", rerr)
			}
			return Result{}, err
		}
		res.Changed = true
	case tr.GuestsChanged:
		if err := s.guests.Save(ctx, tr.Next.Guests); err != nil {
			log.Printf("seating: %s not saved: %v", ev.Action, err)
			return Result{}, err
		}
		res.Changed = true
	case tr.ViewChanged:
		// selection only; losing it is harmless
		if err := s.views.Put(ctx, tr.Next.View); err != nil {
			log.Printf("seating: view not saved: %v", err)
			res.Warnings = append(res.Warnings, "view settings not saved")
		}
	}
	if tr.GuestsChanged || tr.ViewChanged {
		s.invalidate(ctx)
	}
	if res.Changed && tr.Change != nil {
		s.publish(ctx, tr)
	}
	return res, nil
}

// SetView validates and stores a view change.
func (s *SeatingService) SetView(ctx context.Context, upd ViewUpdate) (model.ViewState, error) {
	var warnings []string
	cur, err := s.view(ctx, &warnings)
	if err != nil {
		// overwriting an unread view could change the scheme under the stored guests
		return cur, err
	}
	next, err := UpdateView(cur, upd)
	if err != nil {
		return cur, err
	}
	if err := s.views.Put(ctx, next); err != nil {
		return cur, fmt.Errorf("store view: %w", err)
	}
	s.invalidate(ctx)
	return next, nil
}

func (s *SeatingService) invalidate(ctx context.Context) {
	if s.opts.Cache == nil {
		return
	}
	if err := s.opts.Cache.Bump(ctx); err != nil {
		log.Printf("seating: report cache not invalidated: %v", err)
	}
}

func (s *SeatingService) publish(ctx context.Context, tr Transition) {
	if s.opts.Publisher == nil {
		return
	}
	ev := queue.NewSeatingChangedEvent(tr.Change.Action, tr.Next.View.Scheme, s.opts.Now())
	ev.DisplayIDs = tr.Change.DisplayIDs
	ev.DataIDs = tr.Change.DataIDs
	ev.GroupName = tr.Change.Group
	ev.RowCount = len(tr.Next.Guests)
	if err := s.opts.Publisher.PublishSeatingChanged(ctx, ev); err != nil {
		log.Printf("seating: audit event %s dropped: %v", ev.EventID, err)
	}
}

// TableDetail is one table as seen from the grid.
type TableDetail struct {
	DisplayID int              `json:"display_id"`
	DataID    int              `json:"data_id"`
	GroupName string           `json:"group_name"`
	Guests    []model.GuestRow `json:"guests"`
}

// Table returns the guests seated at a display id, sorted by seat.
func (s *SeatingService) Table(ctx context.Context, displayID int) (TableDetail, []string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return TableDetail{}, nil, err
	}
	res, err := identity.ForView(snap.View)
	if err != nil {
		return TableDetail{}, nil, err
	}
	dataID, err := res.DisplayToData(displayID)
	if err != nil {
		return TableDetail{}, nil, err
	}
	group, _ := seating.GroupName(snap.Guests, dataID)
	rows := seating.FilterGuests(snap.Guests, seating.GuestFilter{Table: &dataID})
	return TableDetail{DisplayID: displayID, DataID: dataID, GroupName: group, Guests: rows}, snap.Warnings, nil
}

// SimulationView bundles everything derived from one simulation.
type SimulationView struct {
	simulation.Result
	Summary   report.Summary       `json:"summary"`
	FloorPlan simulation.FloorPlan `json:"floor_plan"`
}

// Simulate runs the layout simulator on the current snapshot.  Nothing
// is persisted.
func (s *SeatingService) Simulate(ctx context.Context, anchors []int) (SimulationView, []string, error) {
	if len(anchors) == 0 {
		return SimulationView{}, nil, simulation.ErrNoAnchors
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return SimulationView{}, nil, err
	}
	sim := simulation.Simulate(snap.Guests, anchors)
	return SimulationView{
		Result:    sim,
		Summary:   report.Project(sim.Rows, sim.Ordering),
		FloorPlan: simulation.Layout(sim.Ordering, snap.View.Rows, snap.View.Cols),
	}, snap.Warnings, nil
}
