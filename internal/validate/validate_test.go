package validate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/crudbook/internal/record"
)

func validDraft() record.Draft {
	return record.Draft{
		Name:     "Ada Lovelace",
		Contact:  "0123456789",
		Email:    "ada@example.com",
		Age:      "36",
		Password: "Abcdef1!",
	}
}

func TestValidate_ValidDraft(t *testing.T) {
	errs := Validate(validDraft(), nil, "")
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidate_EmptyDraftReportsEveryField(t *testing.T) {
	errs := Validate(record.Draft{}, nil, "")
	want := record.Errors{
		record.FieldName:     MsgNameRequired,
		record.FieldContact:  MsgContactRequired,
		record.FieldEmail:    MsgEmailRequired,
		record.FieldAge:      MsgAgeRequired,
		record.FieldPassword: MsgPasswordRequired,
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_WhitespaceName(t *testing.T) {
	d := validDraft()
	d.Name = "   \t"
	errs := Validate(d, nil, "")
	if errs[record.FieldName] != MsgNameRequired {
		t.Errorf("name error = %q, want %q", errs[record.FieldName], MsgNameRequired)
	}
}

func TestContact(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", MsgContactRequired},
		{"   ", MsgContactRequired},
		{"12345", MsgContactFormat},
		{"12345678901", MsgContactFormat},
		{"12345abcde", MsgContactFormat},
		{" 1234567890", MsgContactFormat},
		{"١٢٣٤٥٦٧٨٩٠", MsgContactFormat}, // non-ASCII digits
		{"1234567890", ""},
	}
	for _, tc := range cases {
		if got := Contact(tc.in); got != tc.want {
			t.Errorf("Contact(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEmail_Format(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", MsgEmailRequired},
		{"plain", MsgEmailInvalid},
		{"a@b", MsgEmailInvalid},
		{"a @b.c", MsgEmailInvalid},
		{"a@b.c", ""},
		{"first.last@sub.example.org", ""},
	}
	for _, tc := range cases {
		if got := Email(tc.in, nil, ""); got != tc.want {
			t.Errorf("Email(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEmail_DuplicateRejected(t *testing.T) {
	existing := []record.Record{{ID: "r1", Email: "ada@example.com"}}
	d := validDraft()
	errs := Validate(d, existing, "")
	if errs[record.FieldEmail] != MsgEmailUsed {
		t.Errorf("email error = %q, want %q", errs[record.FieldEmail], MsgEmailUsed)
	}
}

func TestEmail_EditingSameRecordUnchangedEmailAccepted(t *testing.T) {
	existing := []record.Record{
		{ID: "r1", Email: "ada@example.com"},
		{ID: "r2", Email: "bob@example.com"},
	}
	if got := Email("ada@example.com", existing, "r1"); got != "" {
		t.Errorf("Email while editing own record = %q, want no error", got)
	}
	if got := Email("bob@example.com", existing, "r1"); got != MsgEmailUsed {
		t.Errorf("Email colliding with another record = %q, want %q", got, MsgEmailUsed)
	}
}

// Exclusion is by record identity. When two stored records already share an
// email, editing one of them without changing the email still collides with
// the other one.
func TestEmail_ExclusionIsByIdentityNotByEmail(t *testing.T) {
	existing := []record.Record{
		{ID: "r1", Email: "dup@example.com"},
		{ID: "r2", Email: "dup@example.com"},
	}
	if got := Email("dup@example.com", existing, "r1"); got != MsgEmailUsed {
		t.Errorf("Email = %q, want %q", got, MsgEmailUsed)
	}
}

func TestEmail_CaseSensitiveUniqueness(t *testing.T) {
	existing := []record.Record{{ID: "r1", Email: "ada@example.com"}}
	if got := Email("ADA@example.com", existing, ""); got != "" {
		t.Errorf("Email = %q, want no error for differently-cased address", got)
	}
}

func TestAge(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", MsgAgeRequired},
		{"  ", MsgAgeRequired},
		{"17", MsgAgeRange},
		{"121", MsgAgeRange},
		{"abc", MsgAgeRange},
		{"25.5", MsgAgeRange},
		{"-20", MsgAgeRange},
		{"18", ""},
		{"120", ""},
		{" 42 ", ""},
	}
	for _, tc := range cases {
		if got := Age(tc.in); got != tc.want {
			t.Errorf("Age(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPassword(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", MsgPasswordRequired},
		{"Abcde1!", MsgPasswordWeak},   // too short
		{"abcdef1!", MsgPasswordWeak},  // no uppercase
		{"ABCDEF1!", MsgPasswordWeak},  // no lowercase
		{"Abcdefg!", MsgPasswordWeak},  // no digit
		{"Abcdefg1", MsgPasswordWeak},  // no symbol
		{"Abcdef1#", MsgPasswordWeak},  // symbol outside the accepted set
		{"Abcd ef1!", MsgPasswordWeak}, // space
		{"Abcdef1!", ""},
		{"P@ssw0rd&More", ""},
	}
	for _, tc := range cases {
		if got := Password(tc.in); got != tc.want {
			t.Errorf("Password(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidate_FieldsInFormOrder(t *testing.T) {
	d := validDraft()
	d.Password = "weak"
	d.Name = ""
	errs := Validate(d, nil, "")
	got := errs.Fields()
	want := []record.Field{record.FieldName, record.FieldPassword}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
}
