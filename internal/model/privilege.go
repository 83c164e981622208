package model

// Privilege represents a permission granted through a role
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "request:submit"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

const (
	PrivRequestSubmit = "request:submit"
	PrivRequestView   = "request:view"
	PrivRequestCancel = "request:cancel"
	PrivRequestDecide = "request:decide"
	PrivProductManage = "product:manage"
	PrivDashboardView = "dashboard:view"
	PrivUserManage    = "user:manage"
)

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	{Code: PrivRequestSubmit, Name: "Submit Change Request"},
	{Code: PrivRequestView, Name: "View Change Requests"},
	{Code: PrivRequestCancel, Name: "Cancel Change Request"},
	{Code: PrivRequestDecide, Name: "Approve or Reject Change Request"},
	{Code: PrivProductManage, Name: "Manage Products Directly"},
	{Code: PrivDashboardView, Name: "View Dashboard"},
	{Code: PrivUserManage, Name: "Manage Admin Users"},
}
