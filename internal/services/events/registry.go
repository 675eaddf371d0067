package events

import (
	"sync"
	"time"

	"github.com/golang/groupcache/lru"

	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

type entry struct {
	view    *View
	token   string
	expires time.Time
}

// Registry хранит представления мероприятий по ключу сессия+мероприятие.
// Число записей ограничено, давно не использованные вытесняются; запись
// истекает через ttl после последнего обращения. Представление привязано
// к токену: после выхода или входа под другим пользователем оно не находится.
type Registry struct {
	mu    sync.Mutex
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewRegistry создаёт Registry не более чем на maxEntries представлений.
func NewRegistry(maxEntries int, ttl time.Duration) *Registry {
	return &Registry{
		cache: lru.New(maxEntries),
		ttl:   ttl,
		now:   time.Now,
	}
}

func registryKey(sessionID, eventID string) string {
	return sessionID + "/" + eventID
}

// Put сохраняет представление нового просмотра страницы, заменяя прежнее.
func (r *Registry) Put(sess *session.Session, eventID string, v *View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Add(registryKey(sess.ID(), eventID), &entry{
		view:    v,
		token:   sess.Token(),
		expires: r.now().Add(r.ttl),
	})
}

// Lookup возвращает текущее представление, если оно не истекло и создано
// для того же токена.
func (r *Registry) Lookup(sess *session.Session, eventID string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live(sess, eventID)
}

// LoadOrStore возвращает текущее представление, а если его нет, сохраняет v.
// loaded сообщает, было ли представление уже в Registry.
func (r *Registry) LoadOrStore(sess *session.Session, eventID string, v *View) (actual *View, loaded bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.live(sess, eventID); ok {
		return existing, true
	}
	r.cache.Add(registryKey(sess.ID(), eventID), &entry{
		view:    v,
		token:   sess.Token(),
		expires: r.now().Add(r.ttl),
	})
	return v, false
}

// live вызывается под r.mu.
func (r *Registry) live(sess *session.Session, eventID string) (*View, bool) {
	key := registryKey(sess.ID(), eventID)
	raw, ok := r.cache.Get(key)
	if !ok {
		return nil, false
	}
	e := raw.(*entry)
	now := r.now()
	if !now.Before(e.expires) || e.token != sess.Token() {
		r.cache.Remove(key)
		return nil, false
	}
	e.expires = now.Add(r.ttl)
	return e.view, true
}

// Len возвращает число хранимых представлений.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Len()
}
