// Package store holds the canonical in-memory collections of users, guests,
// dorms and audit records. It is the single source of truth for a session:
// collections are loaded from a seed at startup and are not persisted.
//
// Writers go through Update, which runs against a private copy of the state
// and commits it only when the callback succeeds, so readers never observe a
// half-applied mutation.
package store

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/guestdesk/internal/domain"
)

// Seed is the initial content of a Store.
// Updates may be given in any order; the store keeps them newest-first.
type Seed struct {
	Users   []domain.User
	Guests  []domain.Guest
	Dorms   []domain.Dorm
	Updates []domain.Update
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock used to stamp mutations.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.nowFn = now }
}

// WithIDFunc replaces the generator used for new entity and record IDs.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Store is the in-memory entity store. The zero value is not usable; call New.
type Store struct {
	mu    sync.RWMutex
	state state
	nowFn func() time.Time
	newID func() string
}

// Snapshot is a consistent copy of every collection taken under one lock.
type Snapshot struct {
	Users   []domain.User
	Guests  []domain.Guest
	Dorms   []domain.Dorm
	Updates []domain.Update
}

// New builds a Store from seed. It returns an error if the seed repeats an ID
// or violates the dorm occupancy invariants checked by Verify.
func New(seed Seed, opts ...Option) (*Store, error) {
	s := &Store{
		nowFn: func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	st := newState()
	for _, u := range seed.Users {
		if _, dup := st.userIdx[u.ID]; dup {
			return nil, fmt.Errorf("store.New: duplicate user %q", u.ID)
		}
		st.userIdx[u.ID] = len(st.users)
		st.users = append(st.users, u)
	}
	for _, g := range seed.Guests {
		if _, dup := st.guestIdx[g.ID]; dup {
			return nil, fmt.Errorf("store.New: duplicate guest %q", g.ID)
		}
		st.putGuest(g.Clone())
	}
	for _, d := range seed.Dorms {
		if _, dup := st.dormIdx[d.ID]; dup {
			return nil, fmt.Errorf("store.New: duplicate dorm %q", d.ID)
		}
		st.putDorm(d.Clone())
	}
	st.updates = slices.Clone(seed.Updates)
	slices.SortStableFunc(st.updates, newestFirst)

	if err := st.verify(); err != nil {
		return nil, fmt.Errorf("store.New: %w", err)
	}
	s.state = st
	return s, nil
}

// Users returns every user in seed order.
func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.users)
}

// Guests returns every guest in insertion order.
func (s *Store) Guests() []domain.Guest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneGuests(s.state.guests)
}

// Dorms returns every dorm in insertion order.
func (s *Store) Dorms() []domain.Dorm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDorms(s.state.dorms)
}

// Updates returns the audit log, most recent first.
func (s *Store) Updates() []domain.Update {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.updates)
}

// Snapshot returns a consistent copy of all four collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Users:   slices.Clone(s.state.users),
		Guests:  cloneGuests(s.state.guests),
		Dorms:   cloneDorms(s.state.dorms),
		Updates: slices.Clone(s.state.updates),
	}
}

// UserByID looks up a user. The bool is false when id is unknown.
func (s *Store) UserByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.user(id)
}

// GuestByID looks up a guest. The bool is false when id is unknown.
func (s *Store) GuestByID(id string) (domain.Guest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.guest(id)
}

// DormByID looks up a dorm. The bool is false when id is unknown.
func (s *Store) DormByID(id string) (domain.Dorm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.dorm(id)
}

// UpdatesForEntity returns every audit record for entityID, newest first.
// Records sharing a timestamp keep their log order.
func (s *Store) UpdatesForEntity(entityID string) []domain.Update {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Update{}
	for _, u := range s.state.updates {
		if u.EntityID == entityID {
			out = append(out, u)
		}
	}
	slices.SortStableFunc(out, newestFirst)
	return out
}

// Update runs fn against a private copy of the state. The copy replaces the
// live state only if fn returns nil; on error nothing is committed.
// Every mutation inside fn sees the same Tx.Now.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{
		state: s.state.clone(),
		now:   s.nowFn(),
		newID: s.newID,
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// Verify checks the dorm occupancy and guest membership invariants against
// the committed state.
func (s *Store) Verify() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.verify()
}

// Tx is the mutable view handed to Update callbacks. It must not be retained
// after the callback returns.
type Tx struct {
	state state
	now   time.Time
	newID func() string
}

// Now returns the timestamp shared by every change in this transaction.
func (tx *Tx) Now() time.Time { return tx.now }

// NewID returns a fresh identifier.
func (tx *Tx) NewID() string { return tx.newID() }

// User looks up a user inside the transaction.
func (tx *Tx) User(id string) (domain.User, bool) { return tx.state.user(id) }

// Guest looks up a guest inside the transaction.
func (tx *Tx) Guest(id string) (domain.Guest, bool) { return tx.state.guest(id) }

// Dorm looks up a dorm inside the transaction.
func (tx *Tx) Dorm(id string) (domain.Dorm, bool) { return tx.state.dorm(id) }

// PutGuest replaces the guest with the same ID, or appends it if new.
func (tx *Tx) PutGuest(g domain.Guest) { tx.state.putGuest(g.Clone()) }

// PutDorm replaces the dorm with the same ID, or appends it if new.
func (tx *Tx) PutDorm(d domain.Dorm) { tx.state.putDorm(d.Clone()) }

// Prepend adds records to the front of the audit log, keeping their order.
func (tx *Tx) Prepend(records ...domain.Update) {
	if len(records) == 0 {
		return
	}
	tx.state.updates = append(slices.Clone(records), tx.state.updates...)
}

type state struct {
	users    []domain.User
	guests   []domain.Guest
	dorms    []domain.Dorm
	updates  []domain.Update
	userIdx  map[string]int
	guestIdx map[string]int
	dormIdx  map[string]int
}

func newState() state {
	return state{
		userIdx:  make(map[string]int),
		guestIdx: make(map[string]int),
		dormIdx:  make(map[string]int),
	}
}

func (st state) clone() state {
	return state{
		users:    slices.Clone(st.users),
		guests:   cloneGuests(st.guests),
		dorms:    cloneDorms(st.dorms),
		updates:  slices.Clone(st.updates),
		userIdx:  maps.Clone(st.userIdx),
		guestIdx: maps.Clone(st.guestIdx),
		dormIdx:  maps.Clone(st.dormIdx),
	}
}

func (st *state) user(id string) (domain.User, bool) {
	i, ok := st.userIdx[id]
	if !ok {
		return domain.User{}, false
	}
	return st.users[i], true
}

func (st *state) guest(id string) (domain.Guest, bool) {
	i, ok := st.guestIdx[id]
	if !ok {
		return domain.Guest{}, false
	}
	return st.guests[i].Clone(), true
}

func (st *state) dorm(id string) (domain.Dorm, bool) {
	i, ok := st.dormIdx[id]
	if !ok {
		return domain.Dorm{}, false
	}
	return st.dorms[i].Clone(), true
}

func (st *state) putGuest(g domain.Guest) {
	if i, ok := st.guestIdx[g.ID]; ok {
		st.guests[i] = g
		return
	}
	st.guestIdx[g.ID] = len(st.guests)
	st.guests = append(st.guests, g)
}

func (st *state) putDorm(d domain.Dorm) {
	if i, ok := st.dormIdx[d.ID]; ok {
		st.dorms[i] = d
		return
	}
	st.dormIdx[d.ID] = len(st.dorms)
	st.dorms = append(st.dorms, d)
}

func cloneGuests(in []domain.Guest) []domain.Guest {
	out := make([]domain.Guest, len(in))
	for i, g := range in {
		out[i] = g.Clone()
	}
	return out
}

func cloneDorms(in []domain.Dorm) []domain.Dorm {
	out := make([]domain.Dorm, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}

func newestFirst(a, b domain.Update) int {
	return b.Timestamp.Compare(a.Timestamp)
}
