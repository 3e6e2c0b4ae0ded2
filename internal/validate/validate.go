package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/crudbook/internal/record"
)

// Messages shown next to the offending input.
const (
	MsgNameRequired     = "Name is required."
	MsgContactRequired  = "Contact number is required"
	MsgContactFormat    = "Allowes 10 digits and number's only"
	MsgEmailRequired    = "Email is required."
	MsgEmailInvalid     = "Email is invalid."
	MsgEmailUsed        = "Email is already used."
	MsgAgeRequired      = "Age is required."
	MsgAgeRange         = "Age must be a number between 18 and 120."
	MsgPasswordRequired = "password is required."
	MsgPasswordWeak     = "password should be 8 character ,include uppercase, lowercase, number & special character."
)

const (
	MinAge            = 18
	MaxAge            = 120
	MinPasswordLength = 8

	// PasswordSymbols is the set of accepted special characters.
	PasswordSymbols = "@$!%*?&"
)

var (
	contactPattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern   = regexp.MustCompile(`\S+@\S+\.\S+`)
)

// Validate checks a draft against the field rules and the existing records.
// editingID is the ID of the record being updated, or "" when adding; that
// record is excluded from the duplicate-email check. The returned map is
// empty when the draft is valid.
func Validate(d record.Draft, existing []record.Record, editingID string) record.Errors {
	errs := record.Errors{}
	set := func(f record.Field, msg string) {
		if msg != "" {
			errs[f] = msg
		}
	}

	set(record.FieldName, Name(d.Name))
	set(record.FieldContact, Contact(d.Contact))
	set(record.FieldEmail, Email(d.Email, existing, editingID))
	set(record.FieldAge, Age(d.Age))
	set(record.FieldPassword, Password(d.Password))

	return errs
}

// Name returns the error message for a name value, or "".
func Name(v string) string {
	if strings.TrimSpace(v) == "" {
		return MsgNameRequired
	}
	return ""
}

// Contact returns the error message for a contact number, or "".
// The format check runs on the raw value, so surrounding spaces fail it.
func Contact(v string) string {
	if strings.TrimSpace(v) == "" {
		return MsgContactRequired
	}
	if !contactPattern.MatchString(v) {
		return MsgContactFormat
	}
	return ""
}

// Email returns the error message for an email, or "". A collision with any
// record other than editingID is reported.
func Email(v string, existing []record.Record, editingID string) string {
	if strings.TrimSpace(v) == "" {
		return MsgEmailRequired
	}
	if !emailPattern.MatchString(v) {
		return MsgEmailInvalid
	}
	for _, r := range existing {
		if editingID != "" && r.ID == editingID {
			continue
		}
		if r.Email == v {
			return MsgEmailUsed
		}
	}
	return ""
}

// Age returns the error message for an age value, or "".
func Age(v string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return MsgAgeRequired
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < MinAge || n > MaxAge {
		return MsgAgeRange
	}
	return ""
}

// Password returns the error message for a password, or "".
func Password(v string) string {
	if v == "" {
		return MsgPasswordRequired
	}
	if !IsStrongPassword(v) {
		return MsgPasswordWeak
	}
	return ""
}

// IsStrongPassword reports whether p has at least MinPasswordLength characters
// drawn only from letters, digits and PasswordSymbols, with at least one
// lowercase letter, uppercase letter, digit and symbol.
func IsStrongPassword(p string) bool {
	if len(p) < MinPasswordLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, c := range p {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, c):
			symbol = true
		default:
			return false
		}
	}
	return lower && upper && digit && symbol
}
