package store

import (
	"github.com/trackme/trackme/pkg/types"
)

// CreateUser registers a user with a password hash and the default goals.
func (s *Store) CreateUser(name, email, passwordHash string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	if _, ok := s.emails[key]; ok {
		return types.User{}, ErrEmailRegistered
	}
	s.seq.user++
	u := types.User{
		ID:        s.seq.user,
		Email:     email,
		Name:      name,
		CreatedAt: s.timestamp(),
	}
	s.users[u.ID] = &userRecord{user: u, passwordHash: passwordHash}
	s.emails[key] = u.ID
	s.goalsLocked(u.ID)
	return u, nil
}

// UserByEmail returns the user registered with email and its password hash.
func (s *Store) UserByEmail(email string) (types.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[normalizeEmail(email)]
	if !ok {
		return types.User{}, "", ErrUserNotFound
	}
	rec := s.users[id]
	return rec.user, rec.passwordHash, nil
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(id int64) (types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return types.User{}, ErrUserNotFound
	}
	return rec.user, nil
}

// UpdateUser applies the set fields of upd. The email must not belong to
// another user.
func (s *Store) UpdateUser(id int64, upd types.UserUpdate) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return types.User{}, ErrUserNotFound
	}
	if upd.Email != nil {
		key := normalizeEmail(*upd.Email)
		if owner, taken := s.emails[key]; taken && owner != id {
			return types.User{}, ErrEmailInUse
		}
		delete(s.emails, normalizeEmail(rec.user.Email))
		rec.user.Email = *upd.Email
		s.emails[key] = id
	}
	if upd.Name != nil {
		rec.user.Name = *upd.Name
	}
	return rec.user, nil
}
