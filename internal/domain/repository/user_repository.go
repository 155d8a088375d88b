package repository

import "github.com/wareline/warehouse-api/internal/domain/entity"

// UserRepository is the persistence port for portal accounts.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// ListClients lists client accounts, optionally filtered by status
	// (empty status means all non-deleted clients).
	ListClients(status string, limit, offset int) ([]*entity.User, error)
	// ListApprovedClients returns every approved client, the population the
	// billing engines iterate over.
	ListApprovedClients() ([]*entity.User, error)
	UpdateStatus(id, status string) error
	Update(user *entity.User) error
}
