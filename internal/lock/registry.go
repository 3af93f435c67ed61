// Package lock kullanıcı başına mutex tutan süreç içi kilit kaydını sağlar.
//
// Kilitler ilk ihtiyaçta oluşturulur ve süreç boyunca silinmez; farklı
// kullanıcılar birbirini hiç beklemez.
package lock

import (
	"sync"
	"sync/atomic"
)

// Registry kullanıcı ID'sinden mutex'e eşzamanlı-güvenli map
type Registry struct {
	locks sync.Map // int64 -> *sync.Mutex
	size  atomic.Int64
}

// NewRegistry boş kayıt oluşturur
func NewRegistry() *Registry {
	return &Registry{}
}

// handle kullanıcının mutex'ini döner, yoksa atomik olarak ekler.
// Aynı anda ilk kez gelen çağıranların hepsi kazananın mutex'ini görür.
func (r *Registry) handle(userID int64) *sync.Mutex {
	if existing, ok := r.locks.Load(userID); ok {
		return existing.(*sync.Mutex)
	}

	actual, loaded := r.locks.LoadOrStore(userID, &sync.Mutex{})
	if !loaded {
		r.size.Add(1)
	}
	return actual.(*sync.Mutex)
}

// Acquire kullanıcının kilidini alır ve kilitli halde döner
func (r *Registry) Acquire(userID int64) *sync.Mutex {
	mu := r.handle(userID)
	mu.Lock()
	return mu
}

// Release Acquire ile alınan kilidi bırakır
func (r *Registry) Release(handle *sync.Mutex) {
	handle.Unlock()
}

// Size şimdiye kadar oluşturulan kilit sayısı
func (r *Registry) Size() int {
	return int(r.size.Load())
}
