package prd

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field limits for bounded text.
const (
	MaxTitleLength       = 256
	MaxAuthorLength      = 256
	MaxDescriptionLength = 512
)

// ValidateCreateInput validates fields required to create a PRD.
func ValidateCreateInput(req CreateRequest) error {
	if err := validateText("title", req.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateText("description", req.Description, MaxDescriptionLength); err != nil {
		return err
	}
	if err := validateText("author", req.Author, MaxAuthorLength); err != nil {
		return err
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, req.Priority)
	}
	return nil
}

func validateText(field, value string, limit int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, field)
	}
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidArgument, field, limit)
	}
	return nil
}

// NormalizeTag lower-cases and trims a tag. Blank tags normalize to "".
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// ClampCompletion bounds a completion percentage to [0, 100].
func ClampCompletion(percent int) int {
	return min(max(percent, 0), 100)
}
