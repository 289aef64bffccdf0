package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func (s *Store) loadUsers() []User {
	var users []User
	s.load(usersKey, &users)
	return users
}

// SignUp registers a local account and signs it in. Passwords are stored as
// bcrypt hashes; the email is the unique handle.
func (s *Store) SignUp(email, password, name, ptName, ptEmail string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	users := s.loadUsers()
	for _, u := range users {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PTName:       strings.TrimSpace(ptName),
		PTEmail:      strings.TrimSpace(ptEmail),
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	users = append(users, user)
	if res := s.SaveWithFallback(usersKey, users); !res.Success {
		return nil, fmt.Errorf("account could not be saved")
	}

	s.SaveWithFallback(authKey, user.ID)
	return &user, nil
}

// SignIn checks the password against the stored hash and persists the
// session.
func (s *Store) SignIn(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.loadUsers() {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		s.SaveWithFallback(authKey, u.ID)
		return &u, nil
	}
	return nil, ErrInvalidCredentials
}

// SignOut drops the persisted session. In-memory state is the caller's to
// clear.
func (s *Store) SignOut() {
	s.remove(authKey)
}

// CurrentUser restores the signed-in user from the persisted session, or
// nil when nobody is signed in.
func (s *Store) CurrentUser() *User {
	var id string
	if !s.load(authKey, &id) || id == "" {
		return nil
	}
	for _, u := range s.loadUsers() {
		if u.ID == id {
			return &u
		}
	}
	return nil
}
