package domain

import "fmt"

// Hop is one edge of a connection: the movie shared with the previous person
// and the person reached through it.
type Hop struct {
	MovieID  string
	PersonID string
}

// Step is a Hop resolved to display records.
type Step struct {
	Index int
	From  Person
	To    Person
	Movie Movie
}

// String renders the step the way the command line prints it.
func (s Step) String() string {
	return fmt.Sprintf("%d: %s and %s starred in %s", s.Index, s.From.Name, s.To.Name, s.Movie.Title)
}

// Connection encapsulates the shortest chain of co-stars between two people.
type Connection struct {
	SourceID  string
	TargetID  string
	Connected bool
	Degrees   int
	Hops      []Hop
	Steps     []Step
}
