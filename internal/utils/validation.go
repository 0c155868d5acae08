package utils

import (
	"errors"
	"regexp"
	"time"
)

// Allow alphanumeric, underscore, hyphen, dot - common in transit IDs
var validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateDate validates service dates in YYYYMMDD format
func ValidateDate(date string) error {
	if date == "" {
		return errors.New("date cannot be empty")
	}

	if _, err := time.Parse("20060102", date); err != nil {
		return errors.New("invalid date format, use YYYYMMDD")
	}

	return nil
}
