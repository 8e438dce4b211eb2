package users

import (
	"context"
	"sync"
	"time"

	"github.com/mcdev12/timesync/go/internal/models"
)

// MemRepository is the in-memory user store: maps with auto-increment ids,
// cleared on process restart.
type MemRepository struct {
	mu     sync.RWMutex
	users  map[int]*models.User
	byUID  map[string]int
	nextID int
}

// NewMemRepository creates an empty in-memory user store.
func NewMemRepository() *MemRepository {
	return &MemRepository{
		users:  make(map[int]*models.User),
		byUID:  make(map[string]int),
		nextID: 1,
	}
}

func (r *MemRepository) CreateOrUpdateUser(ctx context.Context, req CreateOrUpdateUserRequest) (*models.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byUID[req.ExternalUID]; ok {
		existing := r.users[id]
		updated := *existing
		updated.Email = req.Email
		updated.DisplayName = req.DisplayName
		updated.PhotoURL = req.PhotoURL
		r.users[id] = &updated
		return &updated, false, nil
	}

	user := &models.User{
		ID:          r.nextID,
		ExternalUID: req.ExternalUID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		CreatedAt:   time.Now(),
	}
	r.nextID++
	r.users[user.ID] = user
	r.byUID[user.ExternalUID] = user.ID
	return user, true, nil
}

func (r *MemRepository) GetUserByExternalUID(ctx context.Context, externalUID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUID[externalUID]
	if !ok {
		return nil, ErrNotFound
	}
	user := *r.users[id]
	return &user, nil
}
