package repository

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mahakhub/registry/models"
)

func setupTestRepo(t *testing.T) *PersonRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Person{}))

	return NewPersonRepository(db)
}

func intPtr(v int) *int { return &v }

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	repo := setupTestRepo(t)

	var lastID uint
	for i := 0; i < 5; i++ {
		p := &models.Person{Name: fmt.Sprintf("Person %d", i)}
		require.NoError(t, repo.Create(p))
		assert.Greater(t, p.ID, lastID)
		assert.NotZero(t, p.CreatedAt)
		lastID = p.ID
	}
}

func TestGetByID(t *testing.T) {
	repo := setupTestRepo(t)

	p := &models.Person{Name: "Asha", HomeCity: "Ujjain"}
	require.NoError(t, repo.Create(p))

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, "Ujjain", got.HomeCity)

	_, err = repo.GetByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListOrdersByIDDescending(t *testing.T) {
	repo := setupTestRepo(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&models.Person{Name: fmt.Sprintf("P%d", i)}))
	}

	persons, total, err := repo.List(StatusAll, 1, 12)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, persons, 3)
	assert.Greater(t, persons[0].ID, persons[1].ID)
	assert.Greater(t, persons[1].ID, persons[2].ID)
}

func TestListStatusFilterIsExact(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(&models.Person{Name: "A", Status: "Found"}))
	require.NoError(t, repo.Create(&models.Person{Name: "B", Status: "found"}))
	require.NoError(t, repo.Create(&models.Person{Name: "C", Status: "Missing"}))
	require.NoError(t, repo.Create(&models.Person{Name: "D"}))

	persons, total, err := repo.List("Found", 1, 12)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, persons, 1)
	assert.Equal(t, "A", persons[0].Name)

	// "All" and empty both disable the filter
	_, total, err = repo.List(StatusAll, 1, 12)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)

	_, total, err = repo.List("", 1, 12)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
}

func TestListPagination(t *testing.T) {
	repo := setupTestRepo(t)

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Create(&models.Person{Name: fmt.Sprintf("P%d", i)}))
	}

	page1, total, err := repo.List(StatusAll, 1, 12)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Len(t, page1, 12)

	page3, _, err := repo.List(StatusAll, 3, 12)
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	// out-of-range pages are empty, not errors
	page4, total, err := repo.List(StatusAll, 4, 12)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Empty(t, page4)

	// page 0 clamps to 1
	page0, _, err := repo.List(StatusAll, 0, 12)
	require.NoError(t, err)
	assert.Len(t, page0, 12)
}

func TestSearchMatchesSubstringsCaseInsensitively(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(&models.Person{Name: "Ramesh Kumar", HomeCity: "Indore"}))
	require.NoError(t, repo.Create(&models.Person{Name: "Sita", Address: "12 Station Road"}))
	require.NoError(t, repo.Create(&models.Person{Name: "Mohan", DOB: "1990-04-01"}))
	require.NoError(t, repo.Create(&models.Person{Name: "Geeta", BirthMark: "scar on left arm"}))

	results, err := repo.Search("RAMESH")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ramesh Kumar", results[0].Name)

	results, err = repo.Search("station")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Sita", results[0].Name)

	results, err = repo.Search("1990-04")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Mohan", results[0].Name)

	results, err = repo.Search("left arm")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Geeta", results[0].Name)
}

func TestSearchAgeAsDecimalText(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(&models.Person{Name: "Thirteen", Age: intPtr(13)}))
	require.NoError(t, repo.Create(&models.Person{Name: "ThirtyOne", Age: intPtr(31)}))
	require.NoError(t, repo.Create(&models.Person{Name: "NoAge"}))

	results, err := repo.Search("3")
	require.NoError(t, err)
	names := make([]string, 0, len(results))
	for _, p := range results {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Thirteen", "ThirtyOne"}, names)

	results, err = repo.Search("31")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ThirtyOne", results[0].Name)
}

func TestSearchEmptyTermMatchesNothing(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(&models.Person{Name: "Someone"}))

	results, err := repo.Search("")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = repo.Search("   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindDuplicates(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(&models.Person{Name: "Ramesh", DOB: "1990-04-01", BirthMark: "scar"}))
	require.NoError(t, repo.Create(&models.Person{Name: "Ramesh", DOB: "1990-04-01", BirthMark: "mole"}))

	dups, err := repo.FindDuplicates("Ramesh", "1990-04-01", "scar")
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, "scar", dups[0].BirthMark)

	// exact match, not case-insensitive
	dups, err = repo.FindDuplicates("ramesh", "1990-04-01", "scar")
	require.NoError(t, err)
	assert.Empty(t, dups)
}

func TestFindDuplicatesEmptyTriple(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(&models.Person{Name: ""}))

	dups, err := repo.FindDuplicates("", "", "")
	require.NoError(t, err)
	assert.Len(t, dups, 1)
}

func TestUpdateStatusOverwritesOnlyStatusAndComment(t *testing.T) {
	repo := setupTestRepo(t)

	picture := "abc.jpg"
	p := &models.Person{
		Name:        "Ramesh",
		DOB:         "1990-04-01",
		Age:         intPtr(34),
		Picture:     &picture,
		MissingFrom: "Ujjain",
		Status:      "Missing",
		Comment:     "initial report",
	}
	require.NoError(t, repo.Create(p))

	require.NoError(t, repo.UpdateStatus(p.ID, "Found", "located at home"))

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Found", got.Status)
	assert.Equal(t, "located at home", got.Comment)

	// everything else is untouched
	assert.Equal(t, "Ramesh", got.Name)
	assert.Equal(t, "1990-04-01", got.DOB)
	require.NotNil(t, got.Age)
	assert.Equal(t, 34, *got.Age)
	require.NotNil(t, got.Picture)
	assert.Equal(t, "abc.jpg", *got.Picture)
	assert.Equal(t, "Ujjain", got.MissingFrom)
	assert.Equal(t, p.CreatedAt, got.CreatedAt)
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.UpdateStatus(42, "Found", "nope")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, total, err := repo.List(StatusAll, 1, 12)
	require.NoError(t, err)
	assert.Zero(t, total)
}
