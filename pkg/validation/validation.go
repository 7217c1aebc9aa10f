package validation

import (
	"fmt"
	"strings"
)

const (
	MinWorkers = 1
	MaxWorkers = 8

	MaxPageSize = 100
)

func ValidateWorkerCount(workers int) error {
	if workers < MinWorkers || workers > MaxWorkers {
		return fmt.Errorf("worker count must be between %d and %d, got %d", MinWorkers, MaxWorkers, workers)
	}
	return nil
}

func ValidateItemID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("item ID must be a positive integer, got %d", id)
	}
	return nil
}

func ValidateNonEmptyString(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("invalid email address: %s", email)
	}
	return nil
}

func ValidatePageSize(limit int) error {
	if limit <= 0 || limit > MaxPageSize {
		return fmt.Errorf("page size must be between 1 and %d, got %d", MaxPageSize, limit)
	}
	return nil
}

func ValidateWatchStatus(status string) error {
	validStatuses := map[string]bool{
		"planned":  true,
		"watching": true,
		"watched":  true,
	}
	if !validStatuses[status] {
		return fmt.Errorf("invalid watch status: %s (must be one of: planned, watching, watched)", status)
	}
	return nil
}
