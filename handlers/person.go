package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/mahakhub/registry/captcha"
	"github.com/mahakhub/registry/config"
	"github.com/mahakhub/registry/media"
	"github.com/mahakhub/registry/models"
	"github.com/mahakhub/registry/repository"
)

const maxUploadMemory = 32 << 20 // 32 MB before multipart parts spill to disk

// statusTabs drive the gallery filter links. Status is free text in
// storage; these are just the conventional values.
var statusTabs = []string{"All", "Missing", "Found", "Sighted", "Dead", "Updated"}

type PersonHandler struct {
	Repo     repository.PersonRepositoryInterface
	Cfg      config.Config
	Store    *media.UploadStore
	Verifier *captcha.Verifier
	tmpl     *templateSet
}

func NewPersonHandler(repo repository.PersonRepositoryInterface, cfg config.Config, store *media.UploadStore, verifier *captcha.Verifier) (*PersonHandler, error) {
	tmpl, err := newTemplateSet()
	if err != nil {
		return nil, err
	}
	return &PersonHandler{
		Repo:     repo,
		Cfg:      cfg,
		Store:    store,
		Verifier: verifier,
		tmpl:     tmpl,
	}, nil
}

type indexData struct {
	Persons      []models.Person
	Pagination   repository.Pagination
	StatusFilter string
	StatusTabs   []string
}

// Index renders the gallery with optional status filtering and pagination.
func (ph *PersonHandler) Index(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")
	if statusFilter == "" {
		statusFilter = repository.StatusAll
	}

	// non-numeric or missing page defaults to 1, never an error
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	persons, total, err := ph.Repo.List(statusFilter, page, ph.Cfg.PageSize)
	if err != nil {
		log.Printf("Error listing persons: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ph.tmpl.render(w, r, http.StatusOK, "index.html", "Missing Persons", indexData{
		Persons:      persons,
		Pagination:   repository.NewPagination(page, ph.Cfg.PageSize, total),
		StatusFilter: statusFilter,
		StatusTabs:   statusTabs,
	})
}

type searchResultsData struct {
	Persons    []models.Person
	SearchTerm string
}

// SearchForm renders the search page.
func (ph *PersonHandler) SearchForm(w http.ResponseWriter, r *http.Request) {
	ph.tmpl.render(w, r, http.StatusOK, "search.html", "Search", nil)
}

// Search runs the free-text search over the record store.
func (ph *PersonHandler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	term := r.PostFormValue("search_term")

	persons, err := ph.Repo.Search(term)
	if err != nil {
		log.Printf("Error searching persons for '%s': %v", term, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ph.tmpl.render(w, r, http.StatusOK, "search_results.html", "Search Results", searchResultsData{
		Persons:    persons,
		SearchTerm: term,
	})
}

type detailData struct {
	Person *models.Person
}

// Detail renders the full record view.
func (ph *PersonHandler) Detail(w http.ResponseWriter, r *http.Request) {
	person, ok := ph.lookupPerson(w, r)
	if !ok {
		return
	}
	ph.tmpl.render(w, r, http.StatusOK, "person_detail.html", person.Name, detailData{Person: person})
}

type createFormData struct {
	SiteKey string
}

// CreateForm renders the submission form.
func (ph *PersonHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	ph.tmpl.render(w, r, http.StatusOK, "create.html", "Report a Missing Person", createFormData{
		SiteKey: ph.Cfg.RecaptchaSiteKey,
	})
}

type confirmDuplicateData struct {
	Duplicates []models.Person
	Form       createRequest
	SiteKey    string
}

// Create handles the two-phase create submission: captcha gate, duplicate
// check (suspended until the user confirms), uploads, then the insert.
func (ph *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		setFlash(w, "danger", "Could not read the submitted form.")
		http.Redirect(w, r, "/create", http.StatusSeeOther)
		return
	}

	req := parseCreateRequest(r)

	if !ph.Verifier.Verify(r.Context(), req.CaptchaToken) {
		setFlash(w, "danger", "Captcha verification failed. कृपया कैप्चा सत्यापन करें।")
		http.Redirect(w, r, "/create", http.StatusSeeOther)
		return
	}

	if req.Name == "" {
		setFlash(w, "danger", "Name is required.")
		http.Redirect(w, r, "/create", http.StatusSeeOther)
		return
	}

	// phase 1: exact-match duplicate check on (name, dob, birth_mark);
	// empty values compare like any other, so blank triples match blanks
	duplicates, err := ph.Repo.FindDuplicates(req.Name, req.DOB, req.BirthMark)
	if err != nil {
		log.Printf("Error checking duplicates for '%s': %v", req.Name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if len(duplicates) > 0 && !req.ConfirmDuplicate {
		ph.tmpl.render(w, r, http.StatusOK, "confirm_duplicate.html", "Possible Duplicates", confirmDuplicateData{
			Duplicates: duplicates,
			Form:       req,
			SiteKey:    ph.Cfg.RecaptchaSiteKey,
		})
		return
	}

	// phase 2: commit
	person := req.toPerson()
	var warnings []string

	if stored, warn := ph.savePhoto(r, "picture"); warn != "" {
		warnings = append(warnings, warn)
	} else if stored != "" {
		person.Picture = &stored

		if thumbName, err := ph.Store.GenerateThumb(stored); err != nil {
			log.Printf("Warning: thumbnail generation failed for %s: %v", stored, err)
		} else {
			person.PictureThumb = &thumbName
		}
		if takenAt, err := ph.Store.PhotoTakenAt(stored); err != nil {
			log.Printf("Warning: EXIF extraction failed for %s: %v", stored, err)
		} else {
			person.PictureTakenAt = takenAt
		}
	}

	if stored, warn := ph.savePhoto(r, "location_photo"); warn != "" {
		warnings = append(warnings, warn)
	} else if stored != "" {
		person.LocationPhoto = &stored
	}

	if err := ph.Repo.Create(person); err != nil {
		log.Printf("Error creating person '%s': %v", person.Name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if len(warnings) > 0 {
		setFlash(w, "warning", "New person added, but: "+strings.Join(warnings, " "))
	} else {
		setFlash(w, "success", "New person added successfully! नया व्यक्ति सफलतापूर्वक जोड़ा गया!")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// savePhoto stores one optional uploaded photo and returns the generated
// filename. A disallowed file type does not abort the submission; it comes
// back as a user-visible warning instead of being dropped silently.
func (ph *PersonHandler) savePhoto(r *http.Request, field string) (stored string, warning string) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			log.Printf("Error reading upload field %s: %v", field, err)
		}
		return "", ""
	}
	defer file.Close()

	if header.Filename == "" || header.Size == 0 {
		return "", ""
	}

	stored, err = ph.Store.SavePhoto(header.Filename, file)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) {
			return "", fmt.Sprintf("'%s' is not an allowed image type (png, jpg, jpeg, gif) and was not stored.", header.Filename)
		}
		log.Printf("Error storing upload %s: %v", header.Filename, err)
		return "", fmt.Sprintf("'%s' could not be stored.", header.Filename)
	}
	return stored, ""
}

type updateStatusData struct {
	Person  *models.Person
	SiteKey string
}

// UpdateStatusForm renders the status-update form for an existing record.
func (ph *PersonHandler) UpdateStatusForm(w http.ResponseWriter, r *http.Request) {
	person, ok := ph.lookupPerson(w, r)
	if !ok {
		return
	}
	ph.tmpl.render(w, r, http.StatusOK, "update_status.html", "Update Status", updateStatusData{
		Person:  person,
		SiteKey: ph.Cfg.RecaptchaSiteKey,
	})
}

// UpdateStatus overwrites status and comment on an existing record after
// the captcha gate passes. All other fields are untouched.
func (ph *PersonHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	person, ok := ph.lookupPerson(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	req := parseUpdateStatusRequest(r)

	if !ph.Verifier.Verify(r.Context(), req.CaptchaToken) {
		setFlash(w, "danger", "Captcha verification failed. कृपया कैप्चा सत्यापन करें।")
		http.Redirect(w, r, fmt.Sprintf("/update_status/%d", person.ID), http.StatusSeeOther)
		return
	}

	if err := ph.Repo.UpdateStatus(person.ID, req.Status, req.Comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ph.renderNotFound(w, r)
			return
		}
		log.Printf("Error updating status for person %d: %v", person.ID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "Status and comment updated successfully! स्थिति और टिप्पणी सफलतापूर्वक अपडेट हुई!")
	http.Redirect(w, r, fmt.Sprintf("/person/%d", person.ID), http.StatusSeeOther)
}

// lookupPerson resolves the {id} route parameter to a record, rendering
// the not-found page on any miss. The bool reports whether to continue.
func (ph *PersonHandler) lookupPerson(w http.ResponseWriter, r *http.Request) (*models.Person, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		ph.renderNotFound(w, r)
		return nil, false
	}

	person, err := ph.Repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ph.renderNotFound(w, r)
		} else {
			log.Printf("Error getting person %s: %v", idStr, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return nil, false
	}
	return person, true
}

func (ph *PersonHandler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	ph.tmpl.render(w, r, http.StatusNotFound, "not_found.html", "Not Found", nil)
}
