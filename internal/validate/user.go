package validate

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/hs2213/proelection/internal/domain"
)

// The longest global postcode is 10 characters.
const maxPostcodeLength = 10

// User checks the profile rules for a stored user.
func User(user *domain.User) []Violation {
	violations := profile(user.Name, user.PhoneNumber, user.Email, user.Address, user.Postcode, user.Country)

	if user.ID == uuid.Nil {
		violations = append(violations, Violation{Field: "id", Message: "Id is required"})
	}

	return violations
}

// Registration checks a registration request, including the plaintext
// password rules that apply only at the account-creation boundary.
func Registration(req *domain.RegisterRequest) []Violation {
	violations := profile(req.Name, req.PhoneNumber, req.Email, req.Address, req.Postcode, req.Country)
	violations = append(violations, Password(req.Password)...)
	return violations
}

func profile(name, phone, email, address, postcode, country string) []Violation {
	var violations []Violation

	if blank(name) {
		violations = append(violations, Violation{Field: "name", Message: "Please provide a Name"})
	}

	if blank(phone) {
		violations = append(violations, Violation{Field: "phone_number", Message: "Please provide a Phone Number"})
	} else if !validPhoneNumber(phone) {
		violations = append(violations, Violation{Field: "phone_number", Message: "Phone number is invalid"})
	}

	if blank(email) {
		violations = append(violations, Violation{Field: "email", Message: "Please provide an Email"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		violations = append(violations, Violation{Field: "email", Message: "Email is invalid"})
	}

	if blank(address) {
		violations = append(violations, Violation{Field: "address", Message: "Please provide an Address"})
	}

	if blank(postcode) {
		violations = append(violations, Violation{Field: "postcode", Message: "Please provide a Postcode"})
	} else if len(postcode) > maxPostcodeLength {
		violations = append(violations, Violation{Field: "postcode", Message: "Postcode is Invalid"})
	}

	if blank(country) {
		violations = append(violations, Violation{Field: "country", Message: "Please provide a Country"})
	}

	return violations
}

// Password enforces the account password policy: 6-20 characters with at
// least one uppercase letter, one lowercase letter and one digit.
func Password(password string) []Violation {
	var violations []Violation

	if blank(password) {
		return append(violations, Violation{Field: "password", Message: "Password is required"})
	}

	if len(password) < 6 {
		violations = append(violations, Violation{Field: "password", Message: "Password must be at least 6 characters long"})
	}
	if len(password) > 20 {
		violations = append(violations, Violation{Field: "password", Message: "Password must be at most 20 characters long"})
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		violations = append(violations, Violation{Field: "password", Message: "Password must contain at least one uppercase letter."})
	}
	if !hasLower {
		violations = append(violations, Violation{Field: "password", Message: "Password must contain at least one lowercase letter."})
	}
	if !hasDigit {
		violations = append(violations, Violation{Field: "password", Message: "Password must contain at least one number."})
	}

	return violations
}

// validPhoneNumber accepts an optional leading '+' followed by 3 to 15
// digits, the bounds of global phone number lengths.
func validPhoneNumber(phone string) bool {
	digits := strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if len(digits) < 3 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
