package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Record is one persisted entry in the book.
type Record struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	Age      string `json:"age"` // kept as entered; validated as an integer
	Password string `json:"password"`
}

// UnmarshalJSON accepts "age" as either a string or a number. Lists written
// by older versions stored numeric ages; they are kept as text.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var raw struct {
		plain
		Age json.RawMessage `json:"age"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	age, err := ageText(raw.Age)
	if err != nil {
		return err
	}
	*r = Record(raw.plain)
	r.Age = age
	return nil
}

func ageText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("age: %w", err)
	}
	return n.String(), nil
}

// NewID returns a fresh stable record identifier.
func NewID() string {
	return uuid.NewString()
}

// Draft is the in-progress form state, blank or pre-populated from a Record
// under edit. It is never persisted.
type Draft struct {
	Name     string
	Contact  string
	Email    string
	Age      string
	Password string
}

// FromRecord returns a draft pre-populated with r's fields.
func FromRecord(r Record) Draft {
	return Draft{
		Name:     r.Name,
		Contact:  r.Contact,
		Email:    r.Email,
		Age:      r.Age,
		Password: r.Password,
	}
}

// Record builds a Record with the given id from the draft.
func (d Draft) Record(id string) Record {
	return Record{
		ID:       id,
		Name:     d.Name,
		Contact:  d.Contact,
		Email:    d.Email,
		Age:      d.Age,
		Password: d.Password,
	}
}

// Get returns the draft value for field f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldContact:
		return d.Contact
	case FieldEmail:
		return d.Email
	case FieldAge:
		return d.Age
	case FieldPassword:
		return d.Password
	}
	return ""
}

// Set stores v into field f. Unknown fields are ignored.
func (d *Draft) Set(f Field, v string) {
	switch f {
	case FieldName:
		d.Name = v
	case FieldContact:
		d.Contact = v
	case FieldEmail:
		d.Email = v
	case FieldAge:
		d.Age = v
	case FieldPassword:
		d.Password = v
	}
}

// IsBlank reports whether every field is empty.
func (d Draft) IsBlank() bool {
	return d == Draft{}
}

// Field names one of the five form inputs.
type Field string

const (
	FieldName     Field = "name"
	FieldContact  Field = "contact"
	FieldEmail    Field = "email"
	FieldAge      Field = "age"
	FieldPassword Field = "password"
)

// Fields lists every form field in display order.
var Fields = []Field{FieldName, FieldContact, FieldEmail, FieldAge, FieldPassword}

// ParseField converts a string to a Field, reporting whether it is known.
func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// Label returns the form placeholder for the field.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldContact:
		return "Contact Number"
	case FieldEmail:
		return "Email"
	case FieldAge:
		return "Age"
	case FieldPassword:
		return "Password"
	}
	return string(f)
}

// Errors maps a field to its human-readable validation message.
// An empty map means the draft is valid.
type Errors map[Field]string

// Fields returns the fields carrying an error, in form order.
func (e Errors) Fields() []Field {
	out := make([]Field, 0, len(e))
	for _, f := range Fields {
		if msg, ok := e[f]; ok && msg != "" {
			out = append(out, f)
		}
	}
	return out
}

// Error joins the messages in form order so Errors can travel as an error.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, string(f)+": "+e[f])
	}
	return strings.Join(parts, "; ")
}
