package application

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/adota-pet/service-adoption/internal/domain"
	adopterDomain "github.com/adota-pet/service-adoption/internal/domain/adopter"
	adoptionDomain "github.com/adota-pet/service-adoption/internal/domain/adoption"
	petDomain "github.com/adota-pet/service-adoption/internal/domain/pet"
	userDomain "github.com/adota-pet/service-adoption/internal/domain/user"
	"github.com/adota-pet/service-adoption/internal/events"
)

// fakeStore is shared in-memory state behind the fake repositories.
// Repositories hand out copies so mutations only land via Save/Update,
// mirroring how the real GORM repositories behave.
type fakeStore struct {
	pets      map[uuid.UUID]*petDomain.Pet
	adopters  map[uuid.UUID]*adopterDomain.Adopter
	requests  map[uuid.UUID]*adoptionDomain.Request
	adoptions map[uuid.UUID]*adoptionDomain.Adoption
	users     map[uuid.UUID]*userDomain.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pets:      map[uuid.UUID]*petDomain.Pet{},
		adopters:  map[uuid.UUID]*adopterDomain.Adopter{},
		requests:  map[uuid.UUID]*adoptionDomain.Request{},
		adoptions: map[uuid.UUID]*adoptionDomain.Adoption{},
		users:     map[uuid.UUID]*userDomain.User{},
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for k, v := range s.pets {
		c := *v
		cp.pets[k] = &c
	}
	for k, v := range s.adopters {
		c := *v
		cp.adopters[k] = &c
	}
	for k, v := range s.requests {
		c := *v
		cp.requests[k] = &c
	}
	for k, v := range s.adoptions {
		c := *v
		cp.adoptions[k] = &c
	}
	for k, v := range s.users {
		c := *v
		cp.users[k] = &c
	}
	return cp
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.pets = snap.pets
	s.adopters = snap.adopters
	s.requests = snap.requests
	s.adoptions = snap.adoptions
	s.users = snap.users
}

// --- Pet repository ---

type fakePetRepo struct {
	store     *fakeStore
	updateErr error
	markErr   error
}

func (r *fakePetRepo) FindByID(_ context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	p, ok := r.store.pets[id]
	if !ok {
		return nil, domain.NewNotFoundError("Pet", id.String())
	}
	c := *p
	return &c, nil
}

func (r *fakePetRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*petDomain.Pet, error) {
	result := map[uuid.UUID]*petDomain.Pet{}
	for _, id := range ids {
		if p, ok := r.store.pets[id]; ok {
			c := *p
			result[id] = &c
		}
	}
	return result, nil
}

func (r *fakePetRepo) ListAvailable(_ context.Context) ([]*petDomain.Pet, error) {
	var pets []*petDomain.Pet
	for _, p := range r.store.pets {
		if p.IsAvailable() {
			c := *p
			pets = append(pets, &c)
		}
	}
	return pets, nil
}

func (r *fakePetRepo) ListAll(_ context.Context) ([]*petDomain.Pet, error) {
	var pets []*petDomain.Pet
	for _, p := range r.store.pets {
		c := *p
		pets = append(pets, &c)
	}
	return pets, nil
}

func (r *fakePetRepo) Save(_ context.Context, p *petDomain.Pet) error {
	c := *p
	r.store.pets[p.ID()] = &c
	return nil
}

func (r *fakePetRepo) Update(_ context.Context, p *petDomain.Pet) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.store.pets[p.ID()]; !ok {
		return domain.NewNotFoundError("Pet", p.ID().String())
	}
	c := *p
	r.store.pets[p.ID()] = &c
	return nil
}

func (r *fakePetRepo) MarkAdopted(_ context.Context, id uuid.UUID) error {
	if r.markErr != nil {
		return r.markErr
	}
	p, ok := r.store.pets[id]
	if !ok {
		return domain.NewNotFoundError("Pet", id.String())
	}
	if !p.IsAvailable() {
		return domain.NewConflictError("this pet has already been adopted")
	}
	c := *p
	if err := c.MarkAdopted(); err != nil {
		return err
	}
	r.store.pets[id] = &c
	return nil
}

func (r *fakePetRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.pets[id]; !ok {
		return domain.NewNotFoundError("Pet", id.String())
	}
	delete(r.store.pets, id)
	return nil
}

// --- Adopter repository ---

type fakeAdopterRepo struct {
	store *fakeStore
}

func (r *fakeAdopterRepo) FindByID(_ context.Context, id uuid.UUID) (*adopterDomain.Adopter, error) {
	a, ok := r.store.adopters[id]
	if !ok {
		return nil, domain.NewNotFoundError("Adopter", id.String())
	}
	c := *a
	return &c, nil
}

func (r *fakeAdopterRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*adopterDomain.Adopter, error) {
	result := map[uuid.UUID]*adopterDomain.Adopter{}
	for _, id := range ids {
		if a, ok := r.store.adopters[id]; ok {
			c := *a
			result[id] = &c
		}
	}
	return result, nil
}

func (r *fakeAdopterRepo) FindByEmail(_ context.Context, email string) (*adopterDomain.Adopter, error) {
	normalized := adopterDomain.NormalizeEmail(email)
	for _, a := range r.store.adopters {
		if a.Email() == normalized {
			c := *a
			return &c, nil
		}
	}
	return nil, domain.NewNotFoundError("Adopter", email)
}

func (r *fakeAdopterRepo) ListAll(_ context.Context) ([]*adopterDomain.Adopter, error) {
	var adopters []*adopterDomain.Adopter
	for _, a := range r.store.adopters {
		c := *a
		adopters = append(adopters, &c)
	}
	return adopters, nil
}

func (r *fakeAdopterRepo) Save(_ context.Context, a *adopterDomain.Adopter) error {
	for _, existing := range r.store.adopters {
		if existing.Email() == a.Email() {
			return domain.NewConflictError("an adopter with this email already exists")
		}
	}
	c := *a
	r.store.adopters[a.ID()] = &c
	return nil
}

func (r *fakeAdopterRepo) Update(_ context.Context, a *adopterDomain.Adopter) error {
	if _, ok := r.store.adopters[a.ID()]; !ok {
		return domain.NewNotFoundError("Adopter", a.ID().String())
	}
	c := *a
	r.store.adopters[a.ID()] = &c
	return nil
}

func (r *fakeAdopterRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.adopters[id]; !ok {
		return domain.NewNotFoundError("Adopter", id.String())
	}
	delete(r.store.adopters, id)
	return nil
}

// --- Request repository ---

type fakeRequestRepo struct {
	store     *fakeStore
	updateErr error
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*adoptionDomain.Request, error) {
	req, ok := r.store.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("AdoptionRequest", id.String())
	}
	c := *req
	return &c, nil
}

func (r *fakeRequestRepo) ExistsPendingForPet(_ context.Context, petID uuid.UUID) (bool, error) {
	for _, req := range r.store.requests {
		if req.PetID() == petID && req.Status() == adoptionDomain.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) ListAll(_ context.Context, page, limit int) ([]*adoptionDomain.Request, int64, error) {
	var all []*adoptionDomain.Request
	for _, req := range r.store.requests {
		c := *req
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt().After(all[j].CreatedAt())
	})

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeRequestRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, req := range r.store.requests {
		counts[string(req.Status())]++
	}
	return counts, nil
}

func (r *fakeRequestRepo) Save(_ context.Context, req *adoptionDomain.Request) error {
	c := *req
	r.store.requests[req.ID()] = &c
	return nil
}

func (r *fakeRequestRepo) Update(_ context.Context, req *adoptionDomain.Request) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.store.requests[req.ID()]; !ok {
		return domain.NewNotFoundError("AdoptionRequest", req.ID().String())
	}
	c := *req
	r.store.requests[req.ID()] = &c
	return nil
}

// --- Adoption repository ---

type fakeAdoptionRepo struct {
	store   *fakeStore
	saveErr error
}

func (r *fakeAdoptionRepo) FindByID(_ context.Context, id uuid.UUID) (*adoptionDomain.Adoption, error) {
	a, ok := r.store.adoptions[id]
	if !ok {
		return nil, domain.NewNotFoundError("Adoption", id.String())
	}
	c := *a
	return &c, nil
}

func (r *fakeAdoptionRepo) ListAll(_ context.Context) ([]*adoptionDomain.Adoption, error) {
	var adoptions []*adoptionDomain.Adoption
	for _, a := range r.store.adoptions {
		c := *a
		adoptions = append(adoptions, &c)
	}
	return adoptions, nil
}

func (r *fakeAdoptionRepo) Save(_ context.Context, a *adoptionDomain.Adoption) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	c := *a
	r.store.adoptions[a.ID()] = &c
	return nil
}

// --- User repository ---

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id.String())
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*userDomain.User, error) {
	normalized := adopterDomain.NormalizeEmail(email)
	for _, u := range r.store.users {
		if u.Email() == normalized {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.NewNotFoundError("User", email)
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	for _, existing := range r.store.users {
		if existing.Email() == u.Email() {
			return domain.NewConflictError("this email is already registered")
		}
	}
	c := *u
	r.store.users[u.ID()] = &c
	return nil
}

// --- Transaction manager ---

// fakeTxManager snapshots the store before fn and restores it when fn
// fails, giving the same all-or-nothing behavior as a real database
// transaction.
type fakeTxManager struct {
	store     *fakeStore
	pets      *fakePetRepo
	adopters  *fakeAdopterRepo
	requests  *fakeRequestRepo
	adoptions *fakeAdoptionRepo
}

func (m *fakeTxManager) WithinTx(_ context.Context, fn func(repos adoptionDomain.TxRepos) error) error {
	snap := m.store.snapshot()
	err := fn(adoptionDomain.TxRepos{
		Pets:      m.pets,
		Adopters:  m.adopters,
		Requests:  m.requests,
		Adoptions: m.adoptions,
	})
	if err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// --- Event publisher ---

type fakePublisher struct {
	published []events.CloudEvent
}

func (p *fakePublisher) PublishEvent(_ context.Context, _ string, _ string, event events.CloudEvent) error {
	p.published = append(p.published, event)
	return nil
}

func (p *fakePublisher) types() []string {
	var out []string
	for _, e := range p.published {
		out = append(out, e.Type)
	}
	return out
}
