package domain

// Movie models a film and the year it was released. A zero Year means unknown.
type Movie struct {
	ID    string
	Title string
	Year  int
}
