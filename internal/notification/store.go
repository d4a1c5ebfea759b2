package notification

import (
	"strconv"
	"sync"

	"github.com/Alexmarques11/Backstage/pkg/cache"
	"github.com/Alexmarques11/Backstage/pkg/models"
)

func notificationKey(id string) string {
	return "notification:" + id
}

func userKey(userID int) string {
	return "notifications:user:" + strconv.Itoa(userID)
}

// Store keeps notifications in the TTL cache: one entry per notification
// plus one newest-first ID list per user. The two writes are not
// transactional; Append writes the entry before the index so a crash in
// between leaves an unindexed entry rather than a dangling index slot,
// and reads filter out IDs that no longer resolve.
type Store struct {
	mu    sync.Mutex
	cache *cache.Cache
}

// NewStore creates a store over the given cache.
func NewStore(c *cache.Cache) *Store {
	return &Store{cache: c}
}

// Append persists the notification and prepends its ID to the owner's
// list, making it the newest entry.
func (s *Store) Append(n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Entry first, index second
	s.cache.Set(notificationKey(n.ID), n)

	ids := s.ids(n.UserID)
	s.cache.Set(userKey(n.UserID), append([]string{n.ID}, ids...))
}

// Get returns a notification by ID.
func (s *Store) Get(id string) (models.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id)
}

// ListForUser returns the user's notifications newest-first. IDs whose
// entries expired or went missing are silently skipped.
func (s *Store) ListForUser(userID int, unreadOnly bool) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := []models.Notification{}
	for _, id := range s.ids(userID) {
		n, ok := s.get(id)
		if !ok {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *Store) UnreadCount(userID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, id := range s.ids(userID) {
		if n, ok := s.get(id); ok && !n.IsRead {
			count++
		}
	}
	return count
}

// MarkRead flags one notification as read.
func (s *Store) MarkRead(id string) (models.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.get(id)
	if !ok {
		return models.Notification{}, false
	}
	n.IsRead = true
	s.cache.Set(notificationKey(id), n)
	return n, true
}

// MarkAllRead flags every unread notification of the user as read and
// returns how many were updated. Calling it again updates zero.
func (s *Store) MarkAllRead(userID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for _, id := range s.ids(userID) {
		n, ok := s.get(id)
		if !ok || n.IsRead {
			continue
		}
		n.IsRead = true
		s.cache.Set(notificationKey(id), n)
		updated++
	}
	return updated
}

// Delete removes the notification and rewrites the owner's list to
// exclude it.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.get(id)
	if !ok {
		return false
	}

	ids := s.ids(n.UserID)
	filtered := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}
	s.cache.Set(userKey(n.UserID), filtered)
	s.cache.Delete(notificationKey(id))
	return true
}

// ClearRead deletes all of the user's read notifications and returns how
// many were removed.
func (s *Store) ClearRead(userID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	remaining := []string{}
	for _, id := range s.ids(userID) {
		n, ok := s.get(id)
		if !ok {
			continue
		}
		if n.IsRead {
			s.cache.Delete(notificationKey(id))
			deleted++
		} else {
			remaining = append(remaining, id)
		}
	}
	s.cache.Set(userKey(userID), remaining)
	return deleted
}

// Stats exposes the underlying cache counters for health reporting.
func (s *Store) Stats() cache.Stats {
	return s.cache.Stats()
}

func (s *Store) ids(userID int) []string {
	v, ok := s.cache.Get(userKey(userID))
	if !ok {
		return []string{}
	}
	ids, ok := v.([]string)
	if !ok {
		return []string{}
	}
	return ids
}

func (s *Store) get(id string) (models.Notification, bool) {
	v, ok := s.cache.Get(notificationKey(id))
	if !ok {
		return models.Notification{}, false
	}
	n, ok := v.(models.Notification)
	return n, ok
}
