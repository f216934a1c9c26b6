package repository

import "github.com/mahakhub/registry/models"

// PersonRepositoryInterface defines the record-store operations used by the
// HTTP handlers. Records are never deleted; the only mutation after creation
// is the status/comment update.
type PersonRepositoryInterface interface {
	Create(person *models.Person) error
	GetByID(id uint) (*models.Person, error)
	List(statusFilter string, page, pageSize int) ([]models.Person, int64, error)
	Search(term string) ([]models.Person, error)
	FindDuplicates(name, dob, birthMark string) ([]models.Person, error)
	UpdateStatus(id uint, status, comment string) error
}
