package service

import (
	"context"
	"fmt"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/store"
)

type userService struct {
	store store.Store
}

func NewUserService(st store.Store) UserService {
	return &userService{store: st}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	recs, err := s.store.GetAll(ctx, store.Users)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.User, 0, len(recs))
	for _, r := range recs {
		out = append(out, UserFromRecord(r))
	}
	return out, nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	rec, err := s.store.GetByID(ctx, store.Users, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	u := UserFromRecord(rec)
	return &u, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	recs, err := s.store.List(ctx, store.Users, store.Filter{"email": email})
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("get user by email: %w", store.ErrNotFound)
	}
	u := UserFromRecord(recs[0])
	return &u, nil
}

func (s *userService) Create(ctx context.Context, u *domain.User) error {
	if u.Email == "" {
		return domain.NewValidationError("email", "email is required")
	}
	if !u.Role.Valid() {
		return domain.NewValidationError("role", "unknown role")
	}
	rec, err := s.store.Create(ctx, store.Users, userFields(u))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	u.ID = rec.ID()
	return nil
}
