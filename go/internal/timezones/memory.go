package timezones

import (
	"context"
	"sync"
	"time"

	"github.com/mcdev12/timesync/go/internal/models"
)

// MemRepository is the in-memory timezone store.
type MemRepository struct {
	mu        sync.RWMutex
	timezones map[int]*models.Timezone
	nextID    int
}

// NewMemRepository creates an empty in-memory timezone store.
func NewMemRepository() *MemRepository {
	return &MemRepository{
		timezones: make(map[int]*models.Timezone),
		nextID:    1,
	}
}

func (r *MemRepository) ListByUser(ctx context.Context, userID int) ([]models.Timezone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Timezone
	for _, tz := range r.timezones {
		if tz.UserID == userID {
			result = append(result, *tz)
		}
	}
	return result, nil
}

func (r *MemRepository) Create(ctx context.Context, req CreateTimezoneRequest) (*models.Timezone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.IsPrimary {
		r.demotePrimaryLocked(req.UserID)
	}

	tz := &models.Timezone{
		ID:        r.nextID,
		UserID:    req.UserID,
		Name:      req.Name,
		Timezone:  req.Timezone,
		City:      req.City,
		Country:   req.Country,
		IsPrimary: req.IsPrimary,
		CreatedAt: time.Now(),
	}
	r.nextID++
	r.timezones[tz.ID] = tz
	result := *tz
	return &result, nil
}

func (r *MemRepository) Delete(ctx context.Context, id, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tz, ok := r.timezones[id]; ok && tz.UserID == userID {
		delete(r.timezones, id)
	}
	return nil
}

func (r *MemRepository) SetPrimary(ctx context.Context, id, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.demotePrimaryLocked(userID)
	if tz, ok := r.timezones[id]; ok && tz.UserID == userID {
		tz.IsPrimary = true
	}
	return nil
}

func (r *MemRepository) demotePrimaryLocked(userID int) {
	for _, tz := range r.timezones {
		if tz.UserID == userID && tz.IsPrimary {
			tz.IsPrimary = false
		}
	}
}
