package models

// GuardAdmin is the authorization scope under which admin roles and
// permissions are evaluated.
const GuardAdmin = "admin"

// SuperAdminRole is the protected singleton role seeded at startup.
const SuperAdminRole = "super_admin"

// Admin represents a panel operator authenticated by email and password.
// Protected admins (the seeded super admin) cannot be edited or deleted
// and cannot have their role set altered.
type Admin struct {
	BaseModel
	Email        string `gorm:"uniqueIndex" json:"email"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	IsProtected  bool   `json:"is_protected"`

	Roles []Role `gorm:"many2many:admin_roles;" json:"roles,omitempty"`
}

// Role groups permissions under a guard.
type Role struct {
	BaseModel
	Name        string `gorm:"uniqueIndex" json:"name"`
	Guard       string `gorm:"default:'admin'" json:"guard"`
	IsProtected bool   `json:"is_protected"`

	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
}

// Permission is a named ability, e.g. "view_any_product". The "_any"
// suffix distinguishes any-record scope from own-record scope.
type Permission struct {
	BaseModel
	Name  string `gorm:"uniqueIndex" json:"name"`
	Guard string `gorm:"default:'admin'" json:"guard"`
}
