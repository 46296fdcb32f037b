package users

import "unicode"

// CheckPassword validates a candidate password against the account policy
// (minimum length, upper, lower, digit, non-alphanumeric). It returns one
// message per violated rule, empty when the password is acceptable.
func CheckPassword(password string) []string {
	var reasons []string
	if len(password) < 6 {
		reasons = append(reasons, "PasswordTooShort Passwords must be at least 6 characters.")
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper {
		reasons = append(reasons, "PasswordRequiresUpper Passwords must have at least one uppercase ('A'-'Z').")
	}
	if !hasLower {
		reasons = append(reasons, "PasswordRequiresLower Passwords must have at least one lowercase ('a'-'z').")
	}
	if !hasDigit {
		reasons = append(reasons, "PasswordRequiresDigit Passwords must have at least one digit ('0'-'9').")
	}
	if !hasSymbol {
		reasons = append(reasons, "PasswordRequiresNonAlphanumeric Passwords must have at least one non alphanumeric character.")
	}
	return reasons
}
