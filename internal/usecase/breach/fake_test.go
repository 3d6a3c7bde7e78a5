package breach_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"databreach-registry/internal/domain/entity"
	"databreach-registry/internal/repository"
)

/* ───────────────────── in-memory transactional store ───────────────────── */

type memState struct {
	nextID   int64
	entities map[int64]entity.Entity
	tags     []entity.OrganizationType
	breaches map[int64]entity.DataBreach
	sources  []entity.Source
}

func newMemState() *memState {
	return &memState{
		entities: map[int64]entity.Entity{},
		breaches: map[int64]entity.DataBreach{},
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		nextID:   s.nextID,
		entities: make(map[int64]entity.Entity, len(s.entities)),
		tags:     append([]entity.OrganizationType(nil), s.tags...),
		breaches: make(map[int64]entity.DataBreach, len(s.breaches)),
		sources:  append([]entity.Source(nil), s.sources...),
	}
	for k, v := range s.entities {
		c.entities[k] = v
	}
	for k, v := range s.breaches {
		c.breaches[k] = v
	}
	return c
}

func (s *memState) id() int64 {
	s.nextID++
	return s.nextID
}

// memTx implements repository.TxManager. Each transaction works on a copy of the
// committed state which replaces it only on success.
type memTx struct {
	mu        sync.Mutex
	committed *memState

	// faults maps "Repo.Method" to the error that call returns.
	faults map[string]error
	// raceNames lists entity names a concurrent writer commits just before our insert.
	raceNames map[string]bool

	commits   int
	rollbacks int
}

func newMemTx() *memTx {
	return &memTx{
		committed: newMemState(),
		faults:    map[string]error{},
		raceNames: map[string]bool{},
	}
}

func (m *memTx) Repos() repository.Repositories {
	return m.bind(m.committed)
}

func (m *memTx) WithinTx(ctx context.Context, fn func(context.Context, repository.Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	working := m.committed.clone()
	committed := false
	defer func() {
		if !committed {
			m.rollbacks++
		}
	}()

	if err := fn(ctx, m.bind(working)); err != nil {
		return err
	}
	m.committed = working
	committed = true
	m.commits++
	return nil
}

func (m *memTx) bind(s *memState) repository.Repositories {
	return repository.Repositories{
		Entities: &memEntities{tx: m, s: s},
		Sources:  &memSources{tx: m, s: s},
		Breaches: &memBreaches{tx: m, s: s},
	}
}

func (m *memTx) fault(op string) error {
	return m.faults[op]
}

// snapshot returns committed row counts: entities, tags, breaches, sources.
func (m *memTx) snapshot() [4]int {
	s := m.committed
	return [4]int{len(s.entities), len(s.tags), len(s.breaches), len(s.sources)}
}

/* ───────────────────── entities ───────────────────── */

type memEntities struct {
	tx *memTx
	s  *memState
}

func (r *memEntities) Get(ctx context.Context, id int64) (*entity.Entity, error) {
	if err := r.tx.fault("Entities.Get"); err != nil {
		return nil, err
	}
	e, ok := r.s.entities[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *memEntities) GetByName(ctx context.Context, name string) (*entity.Entity, error) {
	if err := r.tx.fault("Entities.GetByName"); err != nil {
		return nil, err
	}
	for _, e := range r.s.entities {
		if e.Name == name {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (r *memEntities) Create(ctx context.Context, e *entity.Entity) error {
	if err := r.tx.fault("Entities.Create"); err != nil {
		return err
	}
	if r.tx.raceNames[e.Name] {
		delete(r.tx.raceNames, e.Name)
		winner := entity.Entity{ID: r.s.id(), Name: e.Name}
		r.s.entities[winner.ID] = winner
	}
	for _, existing := range r.s.entities {
		if existing.Name == e.Name {
			return fmt.Errorf("Create: %w", repository.ErrDuplicate)
		}
	}
	e.ID = r.s.id()
	r.s.entities[e.ID] = *e
	return nil
}

func (r *memEntities) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.entities[id]; !ok {
		return repository.ErrNoRows
	}
	for _, b := range r.s.breaches {
		if b.EntityID == id {
			return repository.ErrReferenced
		}
	}
	for _, t := range r.s.tags {
		if t.EntityID == id {
			return repository.ErrReferenced
		}
	}
	delete(r.s.entities, id)
	return nil
}

func (r *memEntities) ListTags(ctx context.Context, entityID int64) ([]string, error) {
	tags := []string{}
	for _, t := range r.s.tags {
		if t.EntityID == entityID {
			tags = append(tags, t.OrganizationType)
		}
	}
	return tags, nil
}

func (r *memEntities) AddTag(ctx context.Context, entityID int64, tag string) (bool, error) {
	if err := r.tx.fault("Entities.AddTag"); err != nil {
		return false, err
	}
	for _, t := range r.s.tags {
		if t.EntityID == entityID && t.OrganizationType == tag {
			return false, nil
		}
	}
	r.s.tags = append(r.s.tags, entity.OrganizationType{ID: r.s.id(), OrganizationType: tag, EntityID: entityID})
	return true, nil
}

func (r *memEntities) DeleteTags(ctx context.Context, entityID int64) error {
	if err := r.tx.fault("Entities.DeleteTags"); err != nil {
		return err
	}
	kept := r.s.tags[:0]
	for _, t := range r.s.tags {
		if t.EntityID != entityID {
			kept = append(kept, t)
		}
	}
	r.s.tags = kept
	return nil
}

/* ───────────────────── sources ───────────────────── */

type memSources struct {
	tx *memTx
	s  *memState
}

func (r *memSources) CreateAll(ctx context.Context, breachID int64, urls []string) ([]*entity.Source, error) {
	if err := r.tx.fault("Sources.CreateAll"); err != nil {
		return nil, err
	}
	if _, ok := r.s.breaches[breachID]; !ok {
		return nil, repository.ErrReferenced
	}
	out := make([]*entity.Source, 0, len(urls))
	for _, u := range urls {
		src := entity.Source{ID: r.s.id(), URL: u, DataBreachID: breachID}
		r.s.sources = append(r.s.sources, src)
		out = append(out, &src)
	}
	return out, nil
}

func (r *memSources) ListByBreach(ctx context.Context, breachID int64) ([]*entity.Source, error) {
	out := []*entity.Source{}
	for _, s := range r.s.sources {
		if s.DataBreachID == breachID {
			s := s
			out = append(out, &s)
		}
	}
	return out, nil
}

func (r *memSources) DeleteAll(ctx context.Context, breachID int64) (int64, error) {
	if err := r.tx.fault("Sources.DeleteAll"); err != nil {
		return 0, err
	}
	var n int64
	kept := r.s.sources[:0]
	for _, s := range r.s.sources {
		if s.DataBreachID == breachID {
			n++
			continue
		}
		kept = append(kept, s)
	}
	r.s.sources = kept
	return n, nil
}

/* ───────────────────── breaches ───────────────────── */

type memBreaches struct {
	tx *memTx
	s  *memState
}

func (r *memBreaches) Get(ctx context.Context, id int64) (*entity.DataBreach, error) {
	if err := r.tx.fault("Breaches.Get"); err != nil {
		return nil, err
	}
	b, ok := r.s.breaches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *memBreaches) List(ctx context.Context) ([]*entity.DataBreach, error) {
	if err := r.tx.fault("Breaches.List"); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(r.s.breaches))
	for id := range r.s.breaches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*entity.DataBreach, 0, len(ids))
	for _, id := range ids {
		b := r.s.breaches[id]
		out = append(out, &b)
	}
	return out, nil
}

func (r *memBreaches) Create(ctx context.Context, b *entity.DataBreach) error {
	if err := r.tx.fault("Breaches.Create"); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if _, ok := r.s.entities[b.EntityID]; !ok {
		return repository.ErrReferenced
	}
	b.ID = r.s.id()
	r.s.breaches[b.ID] = *b
	return nil
}

func (r *memBreaches) Update(ctx context.Context, b *entity.DataBreach) error {
	if err := r.tx.fault("Breaches.Update"); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if _, ok := r.s.breaches[b.ID]; !ok {
		return repository.ErrNoRows
	}
	r.s.breaches[b.ID] = *b
	return nil
}

func (r *memBreaches) Delete(ctx context.Context, id int64) error {
	if err := r.tx.fault("Breaches.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.breaches[id]; !ok {
		return repository.ErrNoRows
	}
	for _, s := range r.s.sources {
		if s.DataBreachID == id {
			return repository.ErrReferenced
		}
	}
	delete(r.s.breaches, id)
	return nil
}
