package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mahakhub/registry/models"
)

// form field carrying the reCAPTCHA widget response
const captchaTokenField = "g-recaptcha-response"

// createRequest is the typed shape of a create-form submission. Parsing
// happens once at the boundary; nothing downstream touches the raw form.
type createRequest struct {
	Name            string
	CallbackNumber  string
	Age             *int
	DOB             string
	BirthMark       string
	MissingFrom     string
	CurrentLocation string
	Wearing         string
	HomeCity        string
	Address         string
	AdditionalInfo  string

	CaptchaToken     string
	ConfirmDuplicate bool
}

func parseCreateRequest(r *http.Request) createRequest {
	req := createRequest{
		Name:            strings.TrimSpace(r.PostFormValue("name")),
		CallbackNumber:  strings.TrimSpace(r.PostFormValue("callback_number")),
		DOB:             strings.TrimSpace(r.PostFormValue("dob")),
		BirthMark:       strings.TrimSpace(r.PostFormValue("birth_mark")),
		MissingFrom:     strings.TrimSpace(r.PostFormValue("missing_from")),
		CurrentLocation: strings.TrimSpace(r.PostFormValue("current_location")),
		Wearing:         strings.TrimSpace(r.PostFormValue("wearing")),
		HomeCity:        strings.TrimSpace(r.PostFormValue("home_city")),
		Address:         strings.TrimSpace(r.PostFormValue("address")),
		AdditionalInfo:  strings.TrimSpace(r.PostFormValue("additional_info")),

		CaptchaToken:     r.PostFormValue(captchaTokenField),
		ConfirmDuplicate: r.PostFormValue("confirm_duplicate") == "yes",
	}

	// age is coerced, never validated: a non-numeric value means absent
	if ageStr := strings.TrimSpace(r.PostFormValue("age")); ageStr != "" {
		if age, err := strconv.Atoi(ageStr); err == nil {
			req.Age = &age
		}
	}

	return req
}

// toPerson builds the record to persist; photo fields are attached by the
// upload step afterwards.
func (req createRequest) toPerson() *models.Person {
	return &models.Person{
		Name:            req.Name,
		CallbackNumber:  req.CallbackNumber,
		Age:             req.Age,
		DOB:             req.DOB,
		BirthMark:       req.BirthMark,
		MissingFrom:     req.MissingFrom,
		CurrentLocation: req.CurrentLocation,
		Wearing:         req.Wearing,
		HomeCity:        req.HomeCity,
		Address:         req.Address,
		AdditionalInfo:  req.AdditionalInfo,
	}
}

// updateStatusRequest is the typed shape of an update-status submission.
type updateStatusRequest struct {
	Status       string
	Comment      string
	CaptchaToken string
}

func parseUpdateStatusRequest(r *http.Request) updateStatusRequest {
	return updateStatusRequest{
		Status:       strings.TrimSpace(r.PostFormValue("status")),
		Comment:      strings.TrimSpace(r.PostFormValue("comment")),
		CaptchaToken: r.PostFormValue(captchaTokenField),
	}
}
