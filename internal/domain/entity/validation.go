package entity

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// maxURLLength matches the width of the sources.url column.
const maxURLLength = 200

// ValidateURL validates the format of a source URL.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, and has a valid host.
// Returns a ValidationError if the URL is invalid or empty.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if strings.ContainsRune(rawURL, 0) {
		return &ValidationError{Field: "url", Message: "must not contain NUL characters"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "invalid URL"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" || parsedURL.Hostname() == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	return nil
}

// ValidateYear keeps a breach year within [MinBreachYear, MaxBreachYear].
func ValidateYear(year int) error {
	switch {
	case year < MinBreachYear:
		return &ValidationError{Field: "year", Message: fmt.Sprintf("must be at least %d", MinBreachYear)}
	case year > MaxBreachYear:
		return &ValidationError{Field: "year", Message: fmt.Sprintf("must be at most %d", MaxBreachYear)}
	}
	return nil
}

// ValidateRecords enforces the lower bound on the number of compromised records.
func ValidateRecords(records int64) error {
	if records < MinBreachRecords {
		return &ValidationError{Field: "records", Message: fmt.Sprintf("must be at least %d", MinBreachRecords)}
	}
	return nil
}

// ValidateMethod checks that the breach method is present and fits its column.
func ValidateMethod(method string) error {
	return validateText("method", method, MaxMethodLength)
}

// ValidateEntityName checks that an entity name is present and fits its column.
func ValidateEntityName(name string) error {
	return validateText("name", name, MaxEntityNameLength)
}

// ValidateOrganizationType checks a single organization type tag.
func ValidateOrganizationType(tag string) error {
	return validateText("organization_type", tag, MaxOrgTypeLength)
}

func validateText(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	// text columns reject NUL
	if strings.ContainsRune(value, 0) {
		return &ValidationError{Field: field, Message: "must not contain NUL characters"}
	}
	if utf8.RuneCountInString(value) > maxLen {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must not exceed %d characters", maxLen)}
	}
	return nil
}
