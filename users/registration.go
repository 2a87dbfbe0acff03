package users

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

// Registration is the applicant sign-up form, checked before it is sent to the API.
type Registration struct {
	FullName        string `json:"full_name"`
	AdmissionNumber string `json:"admission_number"`
	InstitutionName string `json:"institution_name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	Password        string `json:"password"`
}

// Normalize trims whitespace and lower-cases the email.
func (r *Registration) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.AdmissionNumber = strings.TrimSpace(r.AdmissionNumber)
	r.InstitutionName = strings.TrimSpace(r.InstitutionName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
}

// Validate returns the first problem found with the form.
func (r Registration) Validate() error {
	required := []struct {
		name, value string
	}{
		{"full name", r.FullName},
		{"admission number", r.AdmissionNumber},
		{"institution name", r.InstitutionName},
		{"email", r.Email},
		{"phone number", r.PhoneNumber},
		{"password", r.Password},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%s is required", f.name)
		}
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("email address is not valid")
	}
	if len(r.PhoneNumber) > 15 {
		return fmt.Errorf("phone number must be at most 15 characters")
	}
	return ValidatePasswordStrength(r.Password)
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}
