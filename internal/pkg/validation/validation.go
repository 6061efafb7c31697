package validation

import (
	"regexp"
	"strings"
)

// Listing field bounds (match the web client's form limits).
const (
	TitleMinLength       = 3
	TitleMaxLength       = 200
	DescriptionMinLength = 10
	DescriptionMaxLength = 5000
	CityMinLength        = 2
	CityMaxLength        = 100
	MaxPrice             = 999999999.99
	PasswordMinLength    = 8
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}

// ValidateListingTitle returns an error message for invalid titles, "" when ok.
func ValidateListingTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "Title is required"
	}
	if len(trimmed) < TitleMinLength {
		return "Title must be at least 3 characters"
	}
	if len(trimmed) > TitleMaxLength {
		return "Title must be less than 200 characters"
	}
	return ""
}

func ValidateListingDescription(description string) string {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "Description is required"
	}
	if len(trimmed) < DescriptionMinLength {
		return "Description must be at least 10 characters"
	}
	if len(trimmed) > DescriptionMaxLength {
		return "Description must be less than 5000 characters"
	}
	return ""
}

func ValidateListingPrice(price float64) string {
	if price != price { // NaN
		return "Price must be a number"
	}
	if price < 0 {
		return "Price cannot be negative"
	}
	if price > MaxPrice {
		return "Price is too large"
	}
	return ""
}

func ValidateCity(city string) string {
	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return "City is required"
	}
	if len(trimmed) < CityMinLength {
		return "City name must be at least 2 characters"
	}
	if len(trimmed) > CityMaxLength {
		return "City name must be less than 100 characters"
	}
	return ""
}
