package render

import (
	"encoding/json"
)

type jsonRow struct {
	Index   int    `json:"index"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Age     string `json:"age"`
}

type jsonView struct {
	Search  string    `json:"search,omitempty"`
	Rows    []jsonRow `json:"rows"`
	Message string    `json:"message,omitempty"`
}

type jsonRenderer struct{}

// Render never includes passwords.
func (r *jsonRenderer) Render(v *View) ([]byte, error) {
	out := jsonView{Search: v.Search, Rows: make([]jsonRow, 0, len(v.Rows))}
	for _, row := range v.Rows {
		out.Rows = append(out.Rows, jsonRow{
			Index:   row.Number,
			ID:      row.Record.ID,
			Name:    row.Record.Name,
			Contact: row.Record.Contact,
			Email:   row.Record.Email,
			Age:     row.Record.Age,
		})
	}
	if len(out.Rows) == 0 {
		out.Message = v.Empty
	}
	return json.MarshalIndent(out, "", "  ")
}
