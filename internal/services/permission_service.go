package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dasturxon/internal/models"
	"github.com/example/dasturxon/internal/utils"
)

// PermissionSet is an immutable capability set with O(1) membership.
type PermissionSet map[string]struct{}

// Can reports whether the set contains the named ability.
func (s PermissionSet) Can(name string) bool {
	_, ok := s[name]
	return ok
}

// NewPermissionSet builds a set from permission names.
func NewPermissionSet(names ...string) PermissionSet {
	set := make(PermissionSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// PermissionService resolves admin capabilities and guards protected
// entities.
type PermissionService struct {
	db *gorm.DB
}

// NewPermissionService constructs a PermissionService.
func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// SetForAdmin loads the union of permissions across the admin's roles.
func (s *PermissionService) SetForAdmin(adminID uuid.UUID) (PermissionSet, error) {
	var admin models.Admin
	if err := s.db.Preload("Roles.Permissions").
		First(&admin, "id = ?", adminID).Error; err != nil {
		return nil, err
	}

	if !admin.IsActive {
		return nil, utils.ForbiddenError("admin account is inactive")
	}

	set := make(PermissionSet)
	for _, role := range admin.Roles {
		for _, perm := range role.Permissions {
			set[perm.Name] = struct{}{}
		}
	}
	return set, nil
}

// GuardAdminMutation rejects mutations targeting a protected admin
// account. Checked before any update, delete or role change.
func GuardAdminMutation(target *models.Admin) error {
	if target.IsProtected {
		return utils.ForbiddenError("this admin account is protected")
	}
	return nil
}

// GuardRoleMutation rejects mutations targeting a protected role.
func GuardRoleMutation(target *models.Role) error {
	if target.IsProtected {
		return utils.ForbiddenError("this role is protected")
	}
	return nil
}
