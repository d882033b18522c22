// Package memory provides in-memory implementations of the service store
// interfaces. Transactions are serialized and roll back by restoring a
// snapshot, which is enough to exercise the workflow rules in unit tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/helpers"
)

type state struct {
	nextID       int64
	users        map[int64]models.User
	programs     map[int64]models.Program
	courses      map[int64]models.Course
	coordinators map[int64]models.ProgramCoordinator
	profiles     map[int64]models.ApplicantProfile
	applications map[int64]models.Application
}

func newState() *state {
	return &state{
		users:        map[int64]models.User{},
		programs:     map[int64]models.Program{},
		courses:      map[int64]models.Course{},
		coordinators: map[int64]models.ProgramCoordinator{},
		profiles:     map[int64]models.ApplicantProfile{},
		applications: map[int64]models.Application{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		nextID:       s.nextID,
		users:        cloneMap(s.users),
		programs:     cloneMap(s.programs),
		courses:      cloneMap(s.courses),
		coordinators: cloneMap(s.coordinators),
		profiles:     cloneMap(s.profiles),
		applications: cloneMap(s.applications),
	}
}

// DB holds the shared state behind every in-memory store
type DB struct {
	txMu  sync.Mutex
	mu    sync.Mutex
	state *state
	clock time.Time
}

// New returns an empty in-memory database
func New() *DB {
	return &DB{
		state: newState(),
		clock: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

// WithTransaction runs fn while holding the transaction lock. If fn fails,
// every write it made is discarded.
func (d *DB) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	d.txMu.Lock()
	defer d.txMu.Unlock()

	d.mu.Lock()
	snapshot := d.state.clone()
	d.mu.Unlock()

	var tx pgx.Tx
	if err := fn(ctx, tx); err != nil {
		d.mu.Lock()
		d.state = snapshot
		d.mu.Unlock()
		return err
	}
	return nil
}

// id and now must be called with mu held
func (d *DB) id() int64 {
	d.state.nextID++
	return d.state.nextID
}

func (d *DB) now() time.Time {
	d.clock = d.clock.Add(time.Millisecond)
	return d.clock
}

// Users returns the user store
func (d *DB) Users() *UserStore { return &UserStore{d: d} }

// Programs returns the program store
func (d *DB) Programs() *ProgramStore { return &ProgramStore{d: d} }

// Courses returns the course store
func (d *DB) Courses() *CourseStore { return &CourseStore{d: d} }

// Coordinators returns the coordinator store
func (d *DB) Coordinators() *CoordinatorStore { return &CoordinatorStore{d: d} }

// Profiles returns the applicant profile store
func (d *DB) Profiles() *ProfileStore { return &ProfileStore{d: d} }

// Applications returns the applicant side application store
func (d *DB) Applications() *ApplicationStore { return &ApplicationStore{d: d} }

// AdminApplications returns the dean inbox store
func (d *DB) AdminApplications() *AdminApplicationStore { return &AdminApplicationStore{d: d} }

func paginate[T any](items []T, page, limit int) []T {
	start, end := helpers.CalculateSliceIndices(page, limit, len(items))
	return items[start:end]
}
