package service

import (
	"context"

	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/pkg/serverutils"
	"ops-collab-be/internal/repository/memory"
	"ops-collab-be/internal/repository/specification"
	"ops-collab-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPermissionService interface {
	RoleOf(ctx context.Context, userId uuid.UUID) (entity.Role, error)
	Require(ctx context.Context, userId uuid.UUID, min entity.Role) error
	Invalidate(userId uuid.UUID)
}

// permissionService resolves a user's current role, caching lookups so hot
// endpoints do not pay a database round trip per request. The cache is
// injected, never package-global, so tests can run isolated instances.
type permissionService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.RoleCache
}

func NewPermissionService(uowFactory unitofwork.RepositoryFactory, cache *memory.RoleCache) IPermissionService {
	return &permissionService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *permissionService) RoleOf(ctx context.Context, userId uuid.UUID) (entity.Role, error) {
	if role, ok := s.cache.Get(userId.String()); ok {
		return role, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", serverutils.ErrUnauthorized
	}
	if user.Banned {
		return "", serverutils.NewAppError(403, "account is banned")
	}

	s.cache.Set(userId.String(), user.Role)
	return user.Role, nil
}

func (s *permissionService) Require(ctx context.Context, userId uuid.UUID, min entity.Role) error {
	role, err := s.RoleOf(ctx, userId)
	if err != nil {
		return err
	}
	if !role.AtLeast(min) {
		return serverutils.ErrForbidden
	}
	return nil
}

func (s *permissionService) Invalidate(userId uuid.UUID) {
	s.cache.Invalidate(userId.String())
}
