package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"orgblog/internal/dto"
	"orgblog/internal/models"
	"orgblog/internal/store"
)

// UserService implements administrative user management. The global admin
// gate runs in middleware before any of these are reached; the self-delete
// guard lives here because it needs the caller identity.
type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	// Pre-check keeps the common duplicate case write-free; the unique index
	// still backstops a race.
	if _, err := s.users.UserByEmail(ctx, req.Email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	user := models.User{
		ID:            uuid.New(),
		Name:          req.Name,
		Email:         req.Email,
		EmailVerified: req.EmailVerified,
		Role:          models.GlobalRole(req.Role),
	}
	account := models.Account{
		ID:         uuid.New(),
		UserID:     user.ID,
		ProviderID: models.ProviderCredential,
		AccountID:  user.ID.String(),
		Password:   string(hash),
	}

	if err := s.users.CreateUserWithAccount(ctx, &user, &account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrConflict
		}
		slog.Error("user create failed", "action", "admin_create_user", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	users, total, err := s.users.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return users, total, nil
}

// Update applies merge semantics: only supplied fields change. A password
// change re-hashes and overwrites the credential account's stored hash.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	user, err := s.users.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.users.UserByEmail(ctx, *req.Email)
		if err == nil && existing.ID != id {
			return nil, ErrConflict
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = models.GlobalRole(*req.Role)
	}
	if req.EmailVerified != nil {
		user.EmailVerified = *req.EmailVerified
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrConflict
		}
		slog.Error("user update failed", "action", "admin_update_user", "user_id", id.String(), "error", err.Error())
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
		}
		if err := s.users.SetCredentialPassword(ctx, id, string(hash)); err != nil {
			slog.Error("password update failed", "action", "admin_update_user", "user_id", id.String(), "error", err.Error())
			return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
		}
	}

	return user, nil
}

// Delete removes the target user, relying on FK cascade for dependent rows.
// Self-deletion is rejected regardless of role so an admin cannot lock
// themselves out mid-session.
func (s *UserService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if callerID == id {
		return ErrSelfDelete
	}

	if err := s.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		slog.Error("user delete failed", "action", "admin_delete_user", "user_id", id.String(), "error", err.Error())
		return fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return nil
}
