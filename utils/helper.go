package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

// the placeholder date time-of-day values are stored on
var timeOfDayBase = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateOf drops the clock part and returns the calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(d), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTimeOfDay parses "HH:MM" onto 1970-01-01 UTC.
func ParseTimeOfDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(TimeOfDayLayout) {
		return time.Time{}, fmt.Errorf("time of day must be HH:MM, got %q", s)
	}
	t, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return timeOfDayBase.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}

// FormatTimeOfDay renders only hour and minute, whatever date the value carries.
func FormatTimeOfDay(t time.Time) string {
	return t.Format(TimeOfDayLayout)
}

// SameTimeOfDay compares hour and minute only.
func SameTimeOfDay(a, b time.Time) bool {
	return a.Hour() == b.Hour() && a.Minute() == b.Minute()
}

func ValidatePhoneNumber(phoneNumber, countryCode string) error {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return err // Phone number is invalid
	}

	if !libphonenumber.IsValidNumber(p) {
		return fmt.Errorf("phone number is not valid")
	}

	return nil
}

// ProcessValidationErrors turns validator errors into field errors.
// Non-validator errors yield a single "body" entry.
func ProcessValidationErrors(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Field: "body", Message: "malformed request body"}}
	}

	details := make([]FieldError, 0, len(validationErrors))
	for _, ve := range validationErrors {
		details = append(details, FieldError{
			Field:   fieldPath(ve),
			Message: validationMessage(ve),
		})
	}
	return details
}

// JsonTagName names struct fields after their json tag in validator errors.
func JsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// "ReportRequest.visit_records[0].visited_at" -> "visit_records[0].visited_at"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must match format " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}

func UniqueSlice[T comparable](slice []T) []T {
	inResult := make(map[T]bool)
	var result []T
	for _, elm := range slice {
		if _, ok := inResult[elm]; !ok {
			inResult[elm] = true
			result = append(result, elm)
		}
	}
	return result
}

func DereferencePtr[T any](ptr *T, defaults ...T) T {
	var defaultValue T
	if len(defaults) > 0 {
		defaultValue = defaults[0]
	}
	if ptr == nil {
		return defaultValue
	}
	return *ptr
}

func NilIfEmpty[T comparable](ptr T) *T {
	var defaultZero T
	if ptr == defaultZero {
		return nil
	}
	return &ptr
}
