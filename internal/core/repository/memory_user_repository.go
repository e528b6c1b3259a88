package repository

import (
	"context"
	"sort"
	"sync"

	"staffdesk/internal/core/employeeid"
	"staffdesk/internal/core/model"
)

// inMemoryUserRepository backs tests and local runs without a MongoDB
// instance. It mirrors the Mongo repository's observable behavior,
// including uniqueness of email and the seeded sequence.
type inMemoryUserRepository struct {
	users map[string]*model.User
	seq   int
	mutex sync.RWMutex
}

func NewInMemoryUserRepository() UserRepository {
	return &inMemoryUserRepository{
		users: make(map[string]*model.User),
	}
}

func (r *inMemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *inMemoryUserRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if user, exists := r.users[id]; exists {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (r *inMemoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *inMemoryUserRepository) FindByRole(_ context.Context, role model.Role) ([]*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	var result []*model.User
	for _, user := range r.users {
		if user.Role == role {
			copied := *user
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *inMemoryUserRepository) FindMostRecent(_ context.Context) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.mostRecentLocked(), nil
}

func (r *inMemoryUserRepository) mostRecentLocked() *model.User {
	var latest *model.User
	for _, user := range r.users {
		if latest == nil || user.CreatedAt.After(latest.CreatedAt) {
			latest = user
		}
	}
	if latest == nil {
		return nil
	}
	copied := *latest
	return &copied
}

func (r *inMemoryUserRepository) Update(_ context.Context, id string, role model.Role, patch model.UserPatch) (*model.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	user, exists := r.users[id]
	if !exists || user.Role != role {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.DOB != nil {
		user.DOB = *patch.DOB
	}
	if patch.Gender != nil {
		user.Gender = model.Gender(*patch.Gender)
	}
	if patch.Age != nil {
		user.Age = *patch.Age
	}
	if patch.Mobile != nil {
		user.Mobile = *patch.Mobile
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Company != nil {
		user.Company = *patch.Company
	}
	copied := *user
	return &copied, nil
}

func (r *inMemoryUserRepository) Delete(_ context.Context, id string, role model.Role) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	user, exists := r.users[id]
	if !exists || user.Role != role {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *inMemoryUserRepository) NextEmployeeID(_ context.Context) (string, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.seq == 0 {
		r.seq = employeeid.Seed
		if last := r.mostRecentLocked(); last != nil && last.EmployeeID != "" {
			n, err := employeeid.Parse(last.EmployeeID)
			if err != nil {
				return "", err
			}
			if n > r.seq {
				r.seq = n
			}
		}
	}
	r.seq++
	return employeeid.Format(r.seq), nil
}
