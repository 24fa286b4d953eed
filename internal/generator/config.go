package generator

// Config drives the synthetic data generator.
type Config struct {
	NumPeople   int
	NumMovies   int
	MaxCastSize int
	// NameCollisionChance is the probability that a new person reuses a name
	// already handed out, which exercises name disambiguation.
	NameCollisionChance float64
	UnknownBirthChance  float64
	Seed                int64
}

// DefaultConfig returns settings roughly the shape of the large sample dataset.
func DefaultConfig() Config {
	return Config{
		NumPeople:           5000,
		NumMovies:           2000,
		MaxCastSize:         6,
		NameCollisionChance: 0.02,
		UnknownBirthChance:  0.1,
		Seed:                42,
	}
}
