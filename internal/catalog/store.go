// Package catalog holds the in-memory people/movies graph. A Store is built
// once by Load and is read-only afterwards, so it can be shared by any number
// of concurrent searches without locking.
package catalog

import (
	"sort"
	"strings"

	"github.com/vanshika/degrees/internal/domain"
)

// LoadStats summarises what Load kept and what it dropped.
type LoadStats struct {
	People           int
	Movies           int
	CastLinks        int
	SkippedCastLinks int
}

// Store indexes people, movies and the cast links between them.
type Store struct {
	people map[string]*personEntry
	movies map[string]*movieEntry
	names  map[string][]string
	stats  LoadStats
}

type personEntry struct {
	person   domain.Person
	movieIDs []string
}

type movieEntry struct {
	movie   domain.Movie
	starIDs []string
}

// Load builds a Store from the three relations. A person or movie that
// appears more than once keeps its last record. Cast links that reference an
// unknown person or movie are skipped and counted in LoadStats.
func Load(people []domain.Person, movies []domain.Movie, cast []domain.CastLink) (*Store, LoadStats) {
	s := &Store{
		people: make(map[string]*personEntry, len(people)),
		movies: make(map[string]*movieEntry, len(movies)),
		names:  make(map[string][]string),
	}

	for _, p := range people {
		s.people[p.ID] = &personEntry{person: p}
	}
	for _, m := range movies {
		s.movies[m.ID] = &movieEntry{movie: m}
	}

	personMovies := make(map[string]map[string]struct{}, len(s.people))
	movieStars := make(map[string]map[string]struct{}, len(s.movies))
	for _, link := range cast {
		if _, ok := s.people[link.PersonID]; !ok {
			s.stats.SkippedCastLinks++
			continue
		}
		if _, ok := s.movies[link.MovieID]; !ok {
			s.stats.SkippedCastLinks++
			continue
		}
		if addToSet(personMovies, link.PersonID, link.MovieID) {
			addToSet(movieStars, link.MovieID, link.PersonID)
			s.stats.CastLinks++
		}
	}

	for id, entry := range s.people {
		entry.movieIDs = sortedKeys(personMovies[id])
		key := normalizeName(entry.person.Name)
		s.names[key] = append(s.names[key], id)
	}
	for _, ids := range s.names {
		sort.Strings(ids)
	}
	for id, entry := range s.movies {
		entry.starIDs = sortedKeys(movieStars[id])
	}

	s.stats.People = len(s.people)
	s.stats.Movies = len(s.movies)
	return s, s.stats
}

// Stats returns the counters collected while loading.
func (s *Store) Stats() LoadStats {
	return s.stats
}

// PersonExists reports whether the person id was loaded.
func (s *Store) PersonExists(personID string) bool {
	_, ok := s.people[personID]
	return ok
}

// MovieExists reports whether the movie id was loaded.
func (s *Store) MovieExists(movieID string) bool {
	_, ok := s.movies[movieID]
	return ok
}

// Person returns the person record for id.
func (s *Store) Person(personID string) (domain.Person, bool) {
	entry, ok := s.people[personID]
	if !ok {
		return domain.Person{}, false
	}
	return entry.person, true
}

// Movie returns the movie record for id.
func (s *Store) Movie(movieID string) (domain.Movie, bool) {
	entry, ok := s.movies[movieID]
	if !ok {
		return domain.Movie{}, false
	}
	return entry.movie, true
}

// PersonIDsForName returns the ids of every person whose name matches,
// ignoring case and runs of whitespace, in ascending id order.
func (s *Store) PersonIDsForName(name string) []string {
	ids := s.names[normalizeName(name)]
	return append([]string(nil), ids...)
}

// MoviesOf returns the movie ids a person starred in, sorted.
func (s *Store) MoviesOf(personID string) []string {
	entry, ok := s.people[personID]
	if !ok {
		return nil
	}
	return append([]string(nil), entry.movieIDs...)
}

// StarsOf returns the person ids credited in a movie, sorted.
func (s *Store) StarsOf(movieID string) []string {
	entry, ok := s.movies[movieID]
	if !ok {
		return nil
	}
	return append([]string(nil), entry.starIDs...)
}

// NeighborsOf returns every (movie, co-star) pair reachable from personID in
// one hop, ordered by movie id then person id. The person is never listed as
// their own neighbor. Unknown ids yield an empty result.
func (s *Store) NeighborsOf(personID string) []domain.Hop {
	entry, ok := s.people[personID]
	if !ok {
		return nil
	}
	var hops []domain.Hop
	for _, movieID := range entry.movieIDs {
		for _, starID := range s.movies[movieID].starIDs {
			if starID == personID {
				continue
			}
			hops = append(hops, domain.Hop{MovieID: movieID, PersonID: starID})
		}
	}
	return hops
}

// normalizeName folds case and collapses whitespace runs so that stored
// names and queries compare equal regardless of spacing.
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func addToSet(sets map[string]map[string]struct{}, key, value string) bool {
	set, ok := sets[key]
	if !ok {
		set = make(map[string]struct{})
		sets[key] = set
	}
	if _, dup := set[value]; dup {
		return false
	}
	set[value] = struct{}{}
	return true
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
