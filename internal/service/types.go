package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vanshika/degrees/internal/domain"
)

var (
	// ErrPersonNotFound indicates no person matches an id or name.
	ErrPersonNotFound = errors.New("person not found")

	// ErrMovieNotFound indicates no movie matches an id.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrMissingEndpoint indicates a search was requested without a source or target.
	ErrMissingEndpoint = errors.New("source and target are required")
)

// AmbiguousNameError is returned when several people share the requested
// name. Callers choose among Candidates and retry by id.
type AmbiguousNameError struct {
	Name       string
	Candidates []domain.Person
}

func (e *AmbiguousNameError) Error() string {
	ids := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		ids = append(ids, c.ID)
	}
	return fmt.Sprintf("name %q matches %d people: %s", e.Name, len(e.Candidates), strings.Join(ids, ", "))
}

// IngestReport summarises a bulk load into the graph database.
type IngestReport struct {
	People     int
	Movies     int
	CastLinks  int
	LinkedCast int
}
