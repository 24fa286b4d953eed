package search

import (
	"errors"
	"fmt"

	"github.com/vanshika/degrees/internal/domain"
)

// ErrUnknownMovie is returned by Describe when a hop names a movie that is
// not in the directory.
var ErrUnknownMovie = errors.New("search: unknown movie")

// Directory resolves ids to display records.
type Directory interface {
	Person(personID string) (domain.Person, bool)
	Movie(movieID string) (domain.Movie, bool)
}

// Describe turns the hops of a path starting at source into numbered steps
// naming both people and the movie they share.
func Describe(dir Directory, source string, hops []domain.Hop) ([]domain.Step, error) {
	from, ok := dir.Person(source)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPerson, source)
	}

	steps := make([]domain.Step, 0, len(hops))
	for i, hop := range hops {
		to, ok := dir.Person(hop.PersonID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPerson, hop.PersonID)
		}
		movie, ok := dir.Movie(hop.MovieID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMovie, hop.MovieID)
		}
		steps = append(steps, domain.Step{
			Index: i + 1,
			From:  from,
			To:    to,
			Movie: movie,
		})
		from = to
	}
	return steps, nil
}
