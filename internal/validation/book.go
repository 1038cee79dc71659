package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"bookcatalog/internal/models"
)

// Result is the outcome of a payload validation: either OK, or a non-empty
// ordered list of human-readable problems. All checks run; nothing
// short-circuits, so one response reports every violation.
type Result struct {
	OK     bool
	Errors []string
}

var (
	isbnPattern     = regexp.MustCompile(`^(?:\d{10}|\d{13})$`)
	recordIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

const (
	msgTitleRequired    = "title is required"
	msgTitleEmpty       = "title must not be empty"
	msgAuthorRequired   = "author is required"
	msgAuthorEmpty      = "author must not be empty"
	msgISBNFormat       = "isbn must be 10 or 13 digits"
	msgPublisherEmpty   = "publisher must not be empty when provided"
	msgCategoryEmpty    = "category must not be empty when provided"
	msgDescriptionEmpty = "description must not be empty when provided"
)

func yearRangeMsg(currentYear int) string {
	return fmt.Sprintf("publicationYear must be between 1000 and %d", currentYear)
}

func blank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}

// ValidateNewBook checks a create payload. Title, author and publicationYear
// are required; isbn, publisher, category and description are optional but
// checked whenever present.
func ValidateNewBook(p models.BookPayload) Result {
	var errs []string

	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		errs = append(errs, msgTitleRequired)
	}
	if p.Author == nil || strings.TrimSpace(*p.Author) == "" {
		errs = append(errs, msgAuthorRequired)
	}

	currentYear := time.Now().Year()
	if p.Year == nil || *p.Year < 1000 || *p.Year > currentYear {
		errs = append(errs, yearRangeMsg(currentYear))
	}

	errs = append(errs, checkOptionalFields(p)...)

	return toResult(errs)
}

// ValidateBookUpdate checks a partial payload: every field is optional, but a
// field that is present must pass the same check as on create.
func ValidateBookUpdate(p models.BookPayload) Result {
	var errs []string

	if blank(p.Title) {
		errs = append(errs, msgTitleEmpty)
	}
	if blank(p.Author) {
		errs = append(errs, msgAuthorEmpty)
	}

	if p.Year != nil {
		currentYear := time.Now().Year()
		if *p.Year < 1000 || *p.Year > currentYear {
			errs = append(errs, yearRangeMsg(currentYear))
		}
	}

	errs = append(errs, checkOptionalFields(p)...)

	return toResult(errs)
}

// checkOptionalFields covers the rules shared by full and partial validation,
// in the fixed reporting order isbn, publisher, category, description.
func checkOptionalFields(p models.BookPayload) []string {
	var errs []string

	if p.ISBN != nil && *p.ISBN != "" && !isbnPattern.MatchString(*p.ISBN) {
		errs = append(errs, msgISBNFormat)
	}
	if blank(p.Publisher) {
		errs = append(errs, msgPublisherEmpty)
	}
	if blank(p.Category) {
		errs = append(errs, msgCategoryEmpty)
	}
	if blank(p.Description) {
		errs = append(errs, msgDescriptionEmpty)
	}
	return errs
}

func toResult(errs []string) Result {
	if len(errs) > 0 {
		return Result{OK: false, Errors: errs}
	}
	return Result{OK: true}
}

// ValidRecordID reports whether id has the 24-hex-character shape every
// stored record id carries. Path parameters are checked with this before any
// lookup happens.
func ValidRecordID(id string) bool {
	return recordIDPattern.MatchString(id)
}
