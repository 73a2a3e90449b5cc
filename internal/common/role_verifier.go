package common

import (
	"context"
	"errors"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/errorx"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// GlobalRoleVerifier resolves privileges from the user_roles table on every
// call. Revoking a role takes effect on the next request.
type GlobalRoleVerifier struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewGlobalRoleVerifier(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{userRepo: userRepo, roleRepo: roleRepo}
}

func (verifier *GlobalRoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.GlobalRole) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	user, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.Unauthenticated, "Not authenticated")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return errorx.Unknown
	}

	if user.IsBanned {
		return errorx.New(errorx.PermissionDenied, "Account is suspended")
	}

	userRoles, err := verifier.roleRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user roles: %v", err)
		return errorx.Unknown
	}

	for _, r := range userRoles {
		if slices.Contains(requiredRoles, r.Role) {
			return nil
		}
	}

	return errorx.New(errorx.PermissionDenied, "Permission denied")
}
