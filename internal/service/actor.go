package service

import (
	"maitri-medico/internal/model"

	"github.com/google/uuid"
)

// Actor is the authenticated back-office user an operation runs on behalf of.
type Actor struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

func (a Actor) IsSuperAdmin() bool {
	return a.Role == model.RoleSuperAdmin
}

// auditID is what goes into created_by/updated_by/deleted_by.
func (a Actor) auditID() string {
	if a.ID == uuid.Nil {
		return a.Name
	}
	return a.ID.String()
}
