package users

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/simpleapi/simpleapi/internal/models"
)

// MemoryStore is an in-memory Store with unique indexes on username and
// email. It is the default backend and the one unit tests run against.
type MemoryStore struct {
	mu         sync.RWMutex
	byID       map[string]*models.UserRecord
	byEmail    map[string]string // lowercased email -> id
	byUsername map[string]string // lowercased username -> id
	roles      map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:       make(map[string]*models.UserRecord),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
		roles:      make(map[string]struct{}),
	}
}

func (m *MemoryStore) Create(ctx context.Context, u *models.UserRecord, password string) error {
	reasons := CheckPassword(password)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byUsername[strings.ToLower(u.Username)]; taken {
		reasons = append(reasons, "DuplicateUserName Username '"+u.Username+"' is already taken.")
	}
	if _, taken := m.byEmail[strings.ToLower(u.Email)]; taken {
		reasons = append(reasons, "DuplicateEmail Email '"+u.Email+"' is already taken.")
	}
	if len(reasons) > 0 {
		return &RejectedError{Reasons: reasons}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	rec := *u
	rec.ID = uuid.NewString()
	rec.PasswordHash = string(hash)
	m.byID[rec.ID] = &rec
	m.byEmail[strings.ToLower(rec.Email)] = rec.ID
	m.byUsername[strings.ToLower(rec.Username)] = rec.ID

	// reflect assigned fields back to the caller
	u.ID = rec.ID
	u.PasswordHash = rec.PasswordHash
	return nil
}

func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return m.copyOf(id), nil
}

func (m *MemoryStore) FindByUsername(ctx context.Context, username string) (*models.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byUsername[strings.ToLower(username)]
	if !ok {
		return nil, nil
	}
	return m.copyOf(id), nil
}

func (m *MemoryStore) VerifyPassword(ctx context.Context, u *models.UserRecord, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *MemoryStore) GetRoles(ctx context.Context, userID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.byID[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]string(nil), rec.Roles...), nil
}

func (m *MemoryStore) GetClaims(ctx context.Context, userID string) ([]models.Claim, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.byID[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]models.Claim(nil), rec.Claims...), nil
}

func (m *MemoryStore) AddClaim(ctx context.Context, userID string, claim models.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byID[userID]
	if !ok {
		return ErrNotFound
	}
	rec.Claims = append(rec.Claims, claim)
	return nil
}

func (m *MemoryStore) SetLockout(ctx context.Context, userID string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byID[userID]
	if !ok {
		return ErrNotFound
	}
	rec.LockoutEnabled = enabled
	return nil
}

func (m *MemoryStore) EnsureRole(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[name] = struct{}{}
	return nil
}

func (m *MemoryStore) AddToRole(ctx context.Context, userID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roles[role]; !ok {
		return ErrUnknownRole
	}
	rec, ok := m.byID[userID]
	if !ok {
		return ErrNotFound
	}
	for _, r := range rec.Roles {
		if r == role {
			return nil
		}
	}
	rec.Roles = append(rec.Roles, role)
	return nil
}

// copyOf returns a detached copy so callers never mutate indexed state.
// Caller must hold at least a read lock.
func (m *MemoryStore) copyOf(id string) *models.UserRecord {
	rec := m.byID[id]
	out := *rec
	out.Roles = append([]string(nil), rec.Roles...)
	out.Claims = append([]models.Claim(nil), rec.Claims...)
	return &out
}
