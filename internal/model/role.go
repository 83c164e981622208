package model

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // SUPER_ADMIN, ADMIN
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleSuperAdmin,
		Name:        "Super Administrator",
		Description: "Approves change requests and manages the catalog directly",
	},
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Submits catalog change requests for approval",
	},
}

// RolePrivileges lists the privilege codes granted to each default role.
var RolePrivileges = map[string][]string{
	RoleSuperAdmin: {
		PrivRequestSubmit, PrivRequestView, PrivRequestCancel,
		PrivRequestDecide, PrivProductManage, PrivDashboardView, PrivUserManage,
	},
	RoleAdmin: {
		PrivRequestSubmit, PrivRequestView, PrivRequestCancel,
	},
}
