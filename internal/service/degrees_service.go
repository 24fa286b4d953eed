package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/metrics"
	"github.com/vanshika/degrees/internal/search"
)

// Catalog is the read-only people/movies graph the service queries.
type Catalog interface {
	search.Graph
	search.Directory
	PersonIDsForName(name string) []string
	MoviesOf(personID string) []string
	StarsOf(movieID string) []string
}

// SearchRecorder receives one observation per search.
type SearchRecorder interface {
	ObserveSearch(outcome string, elapsed time.Duration, stats search.Stats, degrees int)
}

// DegreesService answers lookups and shortest-connection queries over a
// loaded catalog.
type DegreesService struct {
	catalog  Catalog
	finder   *search.Finder
	recorder SearchRecorder
	nowFn    func() time.Time
}

// NewDegreesService constructs a DegreesService. rec may be nil.
func NewDegreesService(cat Catalog, opts search.Options, rec SearchRecorder) *DegreesService {
	return &DegreesService{
		catalog:  cat,
		finder:   search.NewFinder(cat, opts),
		recorder: rec,
		nowFn:    time.Now,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *DegreesService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// FindPeople returns everyone whose name matches, ignoring case.
func (s *DegreesService) FindPeople(name string) []domain.Person {
	ids := s.catalog.PersonIDsForName(sanitizeString(name))
	people := make([]domain.Person, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.catalog.Person(id); ok {
			people = append(people, p)
		}
	}
	return people
}

// ResolvePerson maps a name to a single person id. It returns
// ErrPersonNotFound when nobody matches and *AmbiguousNameError when several
// people do.
func (s *DegreesService) ResolvePerson(name string) (string, error) {
	people := s.FindPeople(name)
	switch len(people) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrPersonNotFound, name)
	case 1:
		return people[0].ID, nil
	default:
		return "", &AmbiguousNameError{Name: sanitizeString(name), Candidates: people}
	}
}

// GetPerson returns a person together with the movies they starred in.
func (s *DegreesService) GetPerson(personID string) (domain.PersonDetail, error) {
	person, ok := s.catalog.Person(personID)
	if !ok {
		return domain.PersonDetail{}, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}
	detail := domain.PersonDetail{Person: person, Movies: []domain.Movie{}}
	for _, movieID := range s.catalog.MoviesOf(personID) {
		if m, ok := s.catalog.Movie(movieID); ok {
			detail.Movies = append(detail.Movies, m)
		}
	}
	return detail, nil
}

// GetMovie returns a movie together with its stars.
func (s *DegreesService) GetMovie(movieID string) (domain.MovieDetail, error) {
	movie, ok := s.catalog.Movie(movieID)
	if !ok {
		return domain.MovieDetail{}, fmt.Errorf("%w: %s", ErrMovieNotFound, movieID)
	}
	detail := domain.MovieDetail{Movie: movie, Stars: []domain.Person{}}
	for _, personID := range s.catalog.StarsOf(movieID) {
		if p, ok := s.catalog.Person(personID); ok {
			detail.Stars = append(detail.Stars, p)
		}
	}
	return detail, nil
}

// Connect finds the shortest chain of co-stars between two person ids. A
// missing connection is reported through Connection.Connected, not an error.
func (s *DegreesService) Connect(ctx context.Context, sourceID, targetID string) (domain.Connection, error) {
	sourceID = sanitizeString(sourceID)
	targetID = sanitizeString(targetID)
	if sourceID == "" || targetID == "" {
		return domain.Connection{}, ErrMissingEndpoint
	}
	for _, id := range []string{sourceID, targetID} {
		if !s.catalog.PersonExists(id) {
			return domain.Connection{}, fmt.Errorf("%w: %s", ErrPersonNotFound, id)
		}
	}

	start := s.nowFn()
	hops, ok, stats, err := s.finder.ShortestPathStats(ctx, sourceID, targetID)
	elapsed := s.nowFn().Sub(start)
	if err != nil {
		s.observe(metrics.OutcomeError, elapsed, stats, 0)
		return domain.Connection{}, fmt.Errorf("shortest path %s -> %s: %w", sourceID, targetID, err)
	}

	conn := domain.Connection{
		SourceID: sourceID,
		TargetID: targetID,
	}
	if !ok {
		s.observe(metrics.OutcomeNotConnected, elapsed, stats, 0)
		return conn, nil
	}

	steps, err := search.Describe(s.catalog, sourceID, hops)
	if err != nil {
		s.observe(metrics.OutcomeError, elapsed, stats, 0)
		return domain.Connection{}, err
	}
	conn.Connected = true
	conn.Degrees = len(hops)
	conn.Hops = hops
	conn.Steps = steps
	s.observe(metrics.OutcomeConnected, elapsed, stats, conn.Degrees)
	return conn, nil
}

// ConnectNames resolves both names and then calls Connect.
func (s *DegreesService) ConnectNames(ctx context.Context, sourceName, targetName string) (domain.Connection, error) {
	if sanitizeString(sourceName) == "" || sanitizeString(targetName) == "" {
		return domain.Connection{}, ErrMissingEndpoint
	}
	sourceID, err := s.ResolvePerson(sourceName)
	if err != nil {
		return domain.Connection{}, err
	}
	targetID, err := s.ResolvePerson(targetName)
	if err != nil {
		return domain.Connection{}, err
	}
	return s.Connect(ctx, sourceID, targetID)
}

func (s *DegreesService) observe(outcome string, elapsed time.Duration, stats search.Stats, degrees int) {
	if s.recorder == nil {
		return
	}
	s.recorder.ObserveSearch(outcome, elapsed, stats, degrees)
}

// IsNotFound reports whether err means a requested person or movie is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPersonNotFound) || errors.Is(err, ErrMovieNotFound)
}
