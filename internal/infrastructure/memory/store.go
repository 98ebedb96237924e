// Package memory implementa los repositorios en memoria. Se usa en tests de casos de uso
// y con DB_DRIVER=memory para demos; replica las restricciones del esquema SQL
// (unicidad, claves foráneas, una membresía por usuario).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/CashCount-api/internal/application/ports"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
)

type state struct {
	companies   map[string]struct{}
	users       map[string]entity.User
	memberships map[string]entity.Membership
	containers  map[int64]entity.Container
	counts      []entity.Count
	nextID      int64
	nextCountID int64
}

func newState() *state {
	return &state{
		companies:   make(map[string]struct{}),
		users:       make(map[string]entity.User),
		memberships: make(map[string]entity.Membership),
		containers:  make(map[int64]entity.Container),
	}
}

func (s *state) clone() *state {
	c := &state{
		companies:   make(map[string]struct{}, len(s.companies)),
		users:       make(map[string]entity.User, len(s.users)),
		memberships: make(map[string]entity.Membership, len(s.memberships)),
		containers:  make(map[int64]entity.Container, len(s.containers)),
		counts:      append([]entity.Count(nil), s.counts...),
		nextID:      s.nextID,
		nextCountID: s.nextCountID,
	}
	for k := range s.companies {
		c.companies[k] = struct{}{}
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.memberships {
		c.memberships[k] = v
	}
	for k, v := range s.containers {
		c.containers[k] = v
	}
	return c
}

// DB almacén en memoria protegido por un RWMutex. Las transacciones se serializan:
// trabajan sobre una copia y la publican solo si fn no devuelve error.
type DB struct {
	mu   sync.RWMutex
	data *state
}

// New crea un almacén vacío.
func New() *DB {
	return &DB{data: newState()}
}

// Store repositorios fuera de transacción (cada llamada toma el lock).
func (db *DB) Store() repository.Store {
	return newStore(access{db: db})
}

// Run implementa ports.TxRunner con semántica todo-o-nada.
func (db *DB) Run(ctx context.Context, fn func(store repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	work := db.data.clone()
	if err := fn(newStore(access{tx: work})); err != nil {
		return err
	}
	db.data = work
	return nil
}

var _ ports.TxRunner = (*DB)(nil)

func newStore(a access) repository.Store {
	return repository.Store{
		Users:       &UserRepo{a},
		Memberships: &MembershipRepo{a},
		Companies:   &CompanyRepo{a},
		Containers:  &ContainerRepo{a},
		Counts:      &CountRepo{a},
	}
}

// access resuelve el estado: el de la transacción en curso o el compartido con lock.
type access struct {
	db *DB
	tx *state
}

func (a access) read(fn func(s *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.db.mu.RLock()
	defer a.db.mu.RUnlock()
	return fn(a.db.data)
}

func (a access) write(fn func(s *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.db.mu.Lock()
	defer a.db.mu.Unlock()
	work := a.db.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	a.db.data = work
	return nil
}

func (s *state) profile(u entity.User) *entity.UserProfile {
	p := &entity.UserProfile{User: u}
	if m, ok := s.memberships[u.ID]; ok {
		p.Membership = m
	}
	return p
}

func sortProfiles(list []*entity.UserProfile) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].User, list[j].User
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID < b.ID
	})
}

func emailTaken(s *state, email, exceptID string) bool {
	if email == "" {
		return false
	}
	for id, u := range s.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
