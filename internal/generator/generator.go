package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
)

// Generator produces synthetic people, movies and cast lists.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
	usedNames     []string
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	defaults := DefaultConfig()
	if cfg.NumPeople <= 0 {
		cfg.NumPeople = defaults.NumPeople
	}
	if cfg.NumMovies <= 0 {
		cfg.NumMovies = defaults.NumMovies
	}
	if cfg.MaxCastSize <= 0 {
		cfg.MaxCastSize = defaults.MaxCastSize
	}
	cfg.MaxCastSize = min(cfg.MaxCastSize, cfg.NumPeople)
	cfg.NameCollisionChance = clampProbability(cfg.NameCollisionChance)
	cfg.UnknownBirthChance = clampProbability(cfg.UnknownBirthChance)
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

// Config returns the effective configuration after defaults are applied.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate synthesises a dataset. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (dataset.Dataset, error) {
	people := make([]domain.Person, g.cfg.NumPeople)
	for i := range people {
		if err := ctx.Err(); err != nil {
			return dataset.Dataset{}, err
		}
		people[i] = domain.Person{
			ID:    fmt.Sprintf("%d", 100+i),
			Name:  g.personName(),
			Birth: g.birthYear(),
		}
	}

	movies := make([]domain.Movie, g.cfg.NumMovies)
	var cast []domain.CastLink
	for i := range movies {
		if err := ctx.Err(); err != nil {
			return dataset.Dataset{}, err
		}
		movie := domain.Movie{
			ID:    fmt.Sprintf("%d", 10000+i),
			Title: g.movieTitle(),
			Year:  1950 + g.rand.Intn(75),
		}
		movies[i] = movie

		size := 1 + g.rand.Intn(g.cfg.MaxCastSize)
		for _, idx := range g.rand.Perm(len(people))[:size] {
			cast = append(cast, domain.CastLink{PersonID: people[idx].ID, MovieID: movie.ID})
		}
	}

	return dataset.Dataset{People: people, Movies: movies, Cast: cast}, nil
}

func (g *Generator) personName() string {
	if len(g.usedNames) > 0 && g.rand.Float64() < g.cfg.NameCollisionChance {
		return g.usedNames[g.rand.Intn(len(g.usedNames))]
	}
	name := fmt.Sprintf("%s %s",
		g.nameFragments.first[g.rand.Intn(len(g.nameFragments.first))],
		g.nameFragments.last[g.rand.Intn(len(g.nameFragments.last))])
	g.usedNames = append(g.usedNames, name)
	return name
}

func (g *Generator) birthYear() *int {
	if g.rand.Float64() < g.cfg.UnknownBirthChance {
		return nil
	}
	year := 1920 + g.rand.Intn(85)
	return &year
}

func (g *Generator) movieTitle() string {
	return fmt.Sprintf("%s %s %s",
		g.nameFragments.articles[g.rand.Intn(len(g.nameFragments.articles))],
		g.nameFragments.adjectives[g.rand.Intn(len(g.nameFragments.adjectives))],
		g.nameFragments.nouns[g.rand.Intn(len(g.nameFragments.nouns))])
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

type nameFragments struct {
	first      []string
	last       []string
	articles   []string
	adjectives []string
	nouns      []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first:      []string{"Jane", "John", "Alex", "Priya", "Liu", "Maria", "Omar", "Sofia", "Noah", "Emma", "Lucas", "Mia", "Ava", "Ethan", "Zara", "Kevin", "Meryl", "Denzel"},
		last:       []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Ivanov", "Nguyen", "Silva", "Brown", "Lee", "Bacon", "Hoffman"},
		articles:   []string{"The", "A", "Return of the", "Night of the", "Last"},
		adjectives: []string{"Silent", "Crimson", "Broken", "Golden", "Hidden", "Electric", "Frozen", "Midnight", "Lost", "Wild"},
		nouns:      []string{"Harbor", "Empire", "Garden", "Signal", "Frontier", "Witness", "Summer", "Machine", "River", "Crown"},
	}
}
