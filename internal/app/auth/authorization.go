package auth

import (
	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/logger"
)

// Actor is the authenticated caller of an operation
type Actor interface {
	ActorID() int64
	ActorRole() models.Role
}

// OwnedResource is anything with a single owning user
type OwnedResource interface {
	OwnerID() int64
}

// Identity is a plain Actor, used where no token claims are at hand
type Identity struct {
	ID   int64
	Role models.Role
}

// ActorID implements Actor
func (i Identity) ActorID() int64 { return i.ID }

// ActorRole implements Actor
func (i Identity) ActorRole() models.Role { return i.Role }

// AuthorizationService evaluates ownership and role predicates before mutations
type AuthorizationService struct {
	log zerolog.Logger
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{log: logger.Component("authorization")}
}

// IsOwner reports whether actor owns resource
func (s *AuthorizationService) IsOwner(actor Actor, resource OwnedResource) bool {
	return actor != nil && resource != nil && actor.ActorID() == resource.OwnerID()
}

// ValidateOwnership returns apperrors.ErrForbidden unless actor owns resource
func (s *AuthorizationService) ValidateOwnership(actor Actor, resource OwnedResource) error {
	if s.IsOwner(actor, resource) {
		return nil
	}
	ev := s.log.Warn()
	if actor != nil {
		ev = ev.Int64("actorID", actor.ActorID())
	}
	if resource != nil {
		ev = ev.Int64("ownerID", resource.OwnerID())
	}
	ev.Msg("Ownership check failed")
	return apperrors.ErrForbidden
}

// RequireRole returns apperrors.ErrForbidden unless actor has one of roles
func (s *AuthorizationService) RequireRole(actor Actor, roles ...models.Role) error {
	if actor == nil {
		return apperrors.ErrForbidden
	}
	for _, r := range roles {
		if actor.ActorRole() == r {
			return nil
		}
	}
	s.log.Warn().Int64("actorID", actor.ActorID()).Str("role", string(actor.ActorRole())).Msg("Role check failed")
	return apperrors.ErrForbidden
}
