package domain

import "strconv"

// Person models a credited performer.
type Person struct {
	ID    string
	Name  string
	Birth *int
}

// BirthYear renders the birth year, or an empty string when it is unknown.
func (p Person) BirthYear() string {
	if p.Birth == nil {
		return ""
	}
	return strconv.Itoa(*p.Birth)
}

// CastLink records that a person starred in a movie.
type CastLink struct {
	PersonID string
	MovieID  string
}
