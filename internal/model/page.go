package model

import "errors"

// ErrPageNotFound is returned when a requested character has no matching page.
// Distinct from a record with all-null fields: callers can tell "page absent"
// from "nothing extracted".
var ErrPageNotFound = errors.New("page not found")

// Page is the input unit: one wiki page title plus its raw markup.
type Page struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}
