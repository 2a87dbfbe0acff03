package storefake

import (
	"context"
	"net/http"
	"sync"

	"github.com/jrsteele09/bursary-portal/storage"
)

var _ storage.Store = (*FakeStore)(nil)

// FakeStore is an in-memory storage.Store. The Err fields, when set, are returned
// by the matching operation without touching the data.
type FakeStore struct {
	lock  sync.RWMutex
	items map[string]string

	GetErr    error
	SetErr    error
	RemoveErr error

	// SetErrFor fails SetItem for the listed keys only.
	SetErrFor map[string]error

	Gets    int
	Sets    int
	Removes int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{items: make(map[string]string)}
}

// Seed stores values directly, bypassing SetErr.
func (fs *FakeStore) Seed(items map[string]string) *FakeStore {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	for k, v := range items {
		fs.items[k] = v
	}
	return fs
}

// Has reports whether key currently holds a value.
func (fs *FakeStore) Has(key string) bool {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	_, ok := fs.items[key]
	return ok
}

// Len returns the number of stored keys.
func (fs *FakeStore) Len() int {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return len(fs.items)
}

func (fs *FakeStore) GetItem(_ context.Context, key string) (string, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.Gets++
	if fs.GetErr != nil {
		return "", fs.GetErr
	}
	v, ok := fs.items[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (fs *FakeStore) SetItem(_ context.Context, key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.Sets++
	if fs.SetErr != nil {
		return fs.SetErr
	}
	if err := fs.SetErrFor[key]; err != nil {
		return err
	}
	fs.items[key] = value
	return nil
}

func (fs *FakeStore) RemoveItem(_ context.Context, key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.Removes++
	if fs.RemoveErr != nil {
		return fs.RemoveErr
	}
	delete(fs.items, key)
	return nil
}

// FakeProvider hands out one FakeStore per browser, keyed by a cookie value.
type FakeProvider struct {
	lock   sync.Mutex
	Cookie string
	stores map[string]*FakeStore
}

var _ storage.Provider = (*FakeProvider)(nil)

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{Cookie: "browser", stores: make(map[string]*FakeStore)}
}

// Browser returns the store used for requests carrying the given browser cookie.
func (fp *FakeProvider) Browser(id string) *FakeStore {
	fp.lock.Lock()
	defer fp.lock.Unlock()
	s, ok := fp.stores[id]
	if !ok {
		s = NewFakeStore()
		fp.stores[id] = s
	}
	return s
}

func (fp *FakeProvider) For(_ http.ResponseWriter, r *http.Request) storage.Store {
	id := ""
	if c, err := r.Cookie(fp.Cookie); err == nil {
		id = c.Value
	}
	return fp.Browser(id)
}
