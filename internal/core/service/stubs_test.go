package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/punchline/punchline-api/internal/core/domain"
	"github.com/punchline/punchline-api/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository that records which uniqueness-check
// fields were consulted. Errors can be injected per operation.
type stubUserRepo struct {
	mu        sync.Mutex
	users     map[int]*domain.User
	nextID    int
	checked   []ports.UserField
	existsErr error
	findErr   error
	insertErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int]*domain.User), nextID: 1}
}

func (r *stubUserRepo) add(user domain.User) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = &user
	return user.ID
}

func (r *stubUserRepo) FindByID(_ context.Context, id int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.findBy(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findBy(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) findBy(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, user := range r.users {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByField(_ context.Context, field ports.UserField, value string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checked = append(r.checked, field)
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, user := range r.users {
		switch field {
		case ports.UserFieldUsername:
			if user.Username == value {
				return true, nil
			}
		case ports.UserFieldEmail:
			if user.Email == value {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return 0, r.insertErr
	}
	clone := *user
	clone.ID = r.nextID
	r.nextID++
	r.users[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id int, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Role = role
	return nil
}

func (r *stubUserRepo) SearchByUsername(_ context.Context, pattern string) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []domain.User
	for _, user := range r.users {
		if strings.Contains(user.Username, pattern) {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *stubUserRepo) checkedFields() []ports.UserField {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.UserField(nil), r.checked...)
}

// stubHasher is a deterministic security.PasswordHasher that counts
// FakeVerify calls.
type stubHasher struct {
	hashErr     error
	fakeVerifys int
}

func (h *stubHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *stubHasher) Verify(password, hash string) bool {
	return hash == "hashed:"+password
}

func (h *stubHasher) FakeVerify() {
	h.fakeVerifys++
}

var errBoom = errors.New("boom")
