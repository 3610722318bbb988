package services

import (
	"context"
	"errors"
	"time"

	"github.com/booknest/booknest-server/internal/views"
	"github.com/booknest/booknest-server/pkg"
	"github.com/booknest/booknest-server/pkg/models"
	"github.com/booknest/booknest-server/pkg/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type UserService interface {
	Search(ctx context.Context, traceID, searchText string) ([]models.User, error)
	// Create registers a user unless the email is already known; the bool
	// reports whether a new record was inserted.
	Create(ctx context.Context, traceID string, req views.CreateUserRequest) (*models.User, bool, error)
	GetByEmail(ctx context.Context, traceID, email string) (*models.User, error)
	// GetRole returns the stored role, or the default role for unknown emails.
	GetRole(ctx context.Context, traceID, email string) (pkg.UserRole, error)
	UpdateProfile(ctx context.Context, traceID, email string, req views.UpdateProfileRequest) (int64, error)
	UpdateRole(ctx context.Context, traceID, email string, role pkg.UserRole) (int64, error)
}

type UserServiceImpl struct {
	logger   *zap.Logger
	userRepo repositories.UserRepository
}

func NewUserService(logger *zap.Logger, userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{logger: logger, userRepo: userRepo}
}

func (s *UserServiceImpl) Search(ctx context.Context, traceID, searchText string) ([]models.User, error) {
	users, err := s.userRepo.Search(ctx, searchText)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	return users, nil
}

func (s *UserServiceImpl) Create(ctx context.Context, traceID string, req views.CreateUserRequest) (*models.User, bool, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, pkg.HandleStoreError(traceID, s.logger, err)
	}

	user := models.User{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Role:        pkg.RoleUser,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.userRepo.Insert(ctx, user)
	if err != nil {
		storeErr := pkg.HandleStoreError(traceID, s.logger, err)
		if pkg.HasCode(storeErr, pkg.ErrStoreDuplicateCode) {
			// Concurrent registration of the same email; the unique index
			// keeps one document either way.
			winner, findErr := s.userRepo.FindByEmail(ctx, req.Email)
			if findErr != nil {
				return nil, false, pkg.HandleStoreError(traceID, s.logger, findErr)
			}
			return winner, false, nil
		}
		return nil, false, storeErr
	}
	user.ID = id
	s.logger.Info("user created", zap.String(pkg.TraceId, traceID), zap.String("email", req.Email))
	return &user, true, nil
}

func (s *UserServiceImpl) GetByEmail(ctx context.Context, traceID, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	return user, nil
}

func (s *UserServiceImpl) GetRole(ctx context.Context, traceID, email string) (pkg.UserRole, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return pkg.RoleUser, nil
	}
	if err != nil {
		return "", pkg.HandleStoreError(traceID, s.logger, err)
	}
	if user.Role == "" {
		return pkg.RoleUser, nil
	}
	return user.Role, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, traceID, email string, req views.UpdateProfileRequest) (int64, error) {
	if req.DisplayName == "" && req.PhotoURL == "" {
		return 0, pkg.NewAppError(pkg.ErrInvalidInputCode, "no profile fields to update", nil)
	}
	modified, err := s.userRepo.UpdateProfile(ctx, email, req.DisplayName, req.PhotoURL)
	if err != nil {
		return 0, pkg.HandleStoreError(traceID, s.logger, err)
	}
	return modified, nil
}

func (s *UserServiceImpl) UpdateRole(ctx context.Context, traceID, email string, role pkg.UserRole) (int64, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return 0, pkg.HandleStoreError(traceID, s.logger, err)
	}
	modified, err := s.userRepo.UpdateRole(ctx, user.ID, role)
	if err != nil {
		return 0, pkg.HandleStoreError(traceID, s.logger, err)
	}
	s.logger.Info("user role updated",
		zap.String(pkg.TraceId, traceID),
		zap.String("email", email),
		zap.String("role", string(role)),
	)
	return modified, nil
}
