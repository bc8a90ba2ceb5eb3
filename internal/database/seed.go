package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/example/dasturxon/internal/models"
	"github.com/example/dasturxon/internal/utils"
)

// defaultPermissions is the full ability set granted to the super admin
// role. Names follow the {action}_{resource} convention; the "_any"
// suffix marks any-record scope.
var defaultPermissions = []string{
	"view_any_admin", "create_admin", "update_admin", "delete_admin",
	"view_any_role", "create_role", "update_role", "delete_role",
	"view_any_merchant", "update_merchant", "approve_merchant", "suspend_merchant",
	"view_any_customer", "update_customer",
	"view_any_category",
	"view_any_product",
	"view_any_order", "delete_any_order",
	"view_dashboard",
}

// Seed creates the permission catalog, the protected super_admin role and
// the protected super admin account when they do not exist yet.
func Seed(conn *gorm.DB, superAdminEmail, superAdminPassword string) error {
	permissions := make([]models.Permission, 0, len(defaultPermissions))
	for _, name := range defaultPermissions {
		var perm models.Permission
		err := conn.Where("name = ? AND guard = ?", name, models.GuardAdmin).First(&perm).Error
		if err == gorm.ErrRecordNotFound {
			perm = models.Permission{Name: name, Guard: models.GuardAdmin}
			if err := conn.Create(&perm).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		permissions = append(permissions, perm)
	}

	var role models.Role
	err := conn.Where("name = ?", models.SuperAdminRole).First(&role).Error
	if err == gorm.ErrRecordNotFound {
		role = models.Role{
			Name:        models.SuperAdminRole,
			Guard:       models.GuardAdmin,
			IsProtected: true,
		}
		if err := conn.Create(&role).Error; err != nil {
			return err
		}
		log.Printf("seeded role %s", role.Name)
	} else if err != nil {
		return err
	}

	if err := conn.Model(&role).Association("Permissions").Replace(permissions); err != nil {
		return err
	}

	var admin models.Admin
	err = conn.Where("email = ?", superAdminEmail).First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		hash, hashErr := utils.HashPassword(superAdminPassword)
		if hashErr != nil {
			return hashErr
		}

		admin = models.Admin{
			Email:        superAdminEmail,
			FullName:     "Super Admin",
			PasswordHash: hash,
			IsActive:     true,
			IsProtected:  true,
		}
		if err := conn.Create(&admin).Error; err != nil {
			return err
		}
		if err := conn.Model(&admin).Association("Roles").Append(&role); err != nil {
			return err
		}
		log.Printf("seeded super admin %s", admin.Email)
	} else if err != nil {
		return err
	}

	return nil
}
