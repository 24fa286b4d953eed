package domain

// PersonDetail groups a person with the movies they starred in.
type PersonDetail struct {
	Person Person
	Movies []Movie
}

// MovieDetail groups a movie with its credited stars.
type MovieDetail struct {
	Movie Movie
	Stars []Person
}
