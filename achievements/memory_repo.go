package achievements

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

var _ Repo = (*MemoryRepo)(nil)

type MemoryRepo struct {
	items map[string]Achievement
	lock  sync.RWMutex
}

func NewMemoryRepo(seed ...Achievement) *MemoryRepo {
	r := &MemoryRepo{items: make(map[string]Achievement)}
	for _, a := range seed {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		r.items[a.ID] = a
	}
	return r
}

func (r *MemoryRepo) List() ([]Achievement, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]Achievement, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (r *MemoryRepo) Add(a Achievement) (Achievement, error) {
	if err := a.Validate(); err != nil {
		return Achievement{}, err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	a.ID = uuid.NewString()
	r.items[a.ID] = a
	return a, nil
}

func (r *MemoryRepo) Delete(id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// Defaults is the list shown before an administrator edits it.
func Defaults() []Achievement {
	return []Achievement{
		{Title: "Bursaries awarded to secondary students", Year: 2023, Description: "Fees support for day and boarding students across every ward."},
		{Title: "University and college support", Year: 2022, Description: "Continuing students at universities and TVET colleges received awards."},
		{Title: "Online applications", Year: 2024, Description: "Applicants can register, apply and track their status online."},
	}
}
