package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mahakhub/registry/models"
)

// StatusAll is the filter value that disables status filtering in List.
const StatusAll = "All"

// searchColumns are the text columns scanned by Search. Age is handled
// separately because it must be compared as its decimal text form.
var searchColumns = []string{
	"name",
	"address",
	"home_city",
	"current_location",
	"missing_from",
	"dob",
	"birth_mark",
}

// PersonRepository handles database operations for missing-person records
type PersonRepository struct {
	DB *gorm.DB
}

// NewPersonRepository creates a new instance of PersonRepository
func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{DB: db}
}

// Create inserts a new person record in the database
func (r *PersonRepository) Create(person *models.Person) error {
	if person.CreatedAt == 0 {
		person.CreatedAt = time.Now().Unix()
	}

	err := r.DB.Create(person).Error
	if err != nil {
		return fmt.Errorf("failed to create person %s: %w", person.Name, err)
	}
	return nil
}

// GetByID retrieves a person by their serial number
func (r *PersonRepository) GetByID(id uint) (*models.Person, error) {
	var person models.Person
	err := r.DB.First(&person, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get person by ID %d: %w", id, err)
	}
	return &person, nil
}

// List retrieves one page of records ordered by id descending (newest
// first), plus the total count matching the filter. statusFilter "All" or
// empty returns every record; anything else is an exact, case-sensitive
// status match. Pages are 1-indexed; out-of-range pages yield an empty
// slice, never an error.
func (r *PersonRepository) List(statusFilter string, page, pageSize int) ([]models.Person, int64, error) {
	if page < 1 {
		page = 1
	}

	query := r.DB.Model(&models.Person{})
	if statusFilter != "" && statusFilter != StatusAll {
		query = query.Where("status = ?", statusFilter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count persons: %w", err)
	}

	var persons []models.Person
	err := query.
		Order("id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&persons).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list persons: %w", err)
	}

	return persons, total, nil
}

// Search finds every record where term appears as a case-insensitive
// substring of at least one searched column. Age participates as its
// decimal text representation, so searching "3" matches ages 3, 13 and 30.
// An empty or whitespace-only term matches nothing: the empty substring is
// contained in every value and would turn search into list-all.
func (r *PersonRepository) Search(term string) ([]models.Person, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Person{}, nil
	}

	like := "%" + strings.ToLower(term) + "%"

	conds := make([]string, 0, len(searchColumns)+1)
	args := make([]interface{}, 0, len(searchColumns)+1)
	for _, col := range searchColumns {
		conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE ?", col))
		args = append(args, like)
	}
	conds = append(conds, "CAST(age AS TEXT) LIKE ?")
	args = append(args, like)

	var persons []models.Person
	err := r.DB.
		Where(strings.Join(conds, " OR "), args...).
		Find(&persons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search persons for '%s': %w", term, err)
	}
	return persons, nil
}

// FindDuplicates returns existing records whose (name, dob, birth_mark)
// triple matches the given values exactly. Empty strings are compared like
// any other value, so an all-empty triple matches other all-empty triples.
func (r *PersonRepository) FindDuplicates(name, dob, birthMark string) ([]models.Person, error) {
	var persons []models.Person
	err := r.DB.
		Where("name = ? AND dob = ? AND birth_mark = ?", name, dob, birthMark).
		Find(&persons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicates for '%s': %w", name, err)
	}
	return persons, nil
}

// UpdateStatus overwrites exactly the status and comment columns of an
// existing record. No history is kept.
func (r *PersonRepository) UpdateStatus(id uint, status, comment string) error {
	result := r.DB.Model(&models.Person{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  status,
			"comment": comment,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status for person ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
