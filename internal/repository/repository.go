package repository

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/graph"
)

// Repository persists the people/movies graph in Neo4j and reads it back.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// EnsureSchema creates the uniqueness constraints the MERGE statements rely
// on. It is idempotent.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.client.Execute(ctx, graph.WriteAccess, stmt, nil); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// UpsertPeople merges a batch of Person nodes keyed by personId.
func (r *Repository) UpsertPeople(ctx context.Context, people []domain.Person) error {
	if len(people) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(people))
	for _, p := range people {
		if p.ID == "" {
			return errors.New("person id is required")
		}
		rows = append(rows, personProperties(p))
	}

	if _, err := r.client.Execute(ctx, graph.WriteAccess, upsertPeopleCypher, map[string]any{"rows": rows}); err != nil {
		return fmt.Errorf("upsert %d people: %w", len(people), err)
	}
	return nil
}

// UpsertMovies merges a batch of Movie nodes keyed by movieId.
func (r *Repository) UpsertMovies(ctx context.Context, movies []domain.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(movies))
	for _, m := range movies {
		if m.ID == "" {
			return errors.New("movie id is required")
		}
		rows = append(rows, movieProperties(m))
	}

	if _, err := r.client.Execute(ctx, graph.WriteAccess, upsertMoviesCypher, map[string]any{"rows": rows}); err != nil {
		return fmt.Errorf("upsert %d movies: %w", len(movies), err)
	}
	return nil
}

// LinkCast merges STARRED_IN edges. Links whose person or movie is missing
// from the database are ignored by the MATCH clauses. It returns how many
// links were matched.
func (r *Repository) LinkCast(ctx context.Context, cast []domain.CastLink) (int, error) {
	if len(cast) == 0 {
		return 0, nil
	}
	rows := make([]map[string]any, 0, len(cast))
	for _, c := range cast {
		rows = append(rows, map[string]any{
			"personId": c.PersonID,
			"movieId":  c.MovieID,
		})
	}

	res, err := r.client.Execute(ctx, graph.WriteAccess, linkCastCypher, map[string]any{"rows": rows})
	if err != nil {
		return 0, fmt.Errorf("link %d cast rows: %w", len(cast), err)
	}
	if len(res.Records) == 0 {
		return 0, nil
	}
	return int(toInt64(res.Records[0]["linked"])), nil
}

// ExportPeople returns every Person node ordered by id.
func (r *Repository) ExportPeople(ctx context.Context) ([]domain.Person, error) {
	res, err := r.client.Execute(ctx, graph.ReadAccess, exportPeopleCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("export people query: %w", err)
	}
	people := make([]domain.Person, 0, len(res.Records))
	for _, record := range res.Records {
		people = append(people, domain.Person{
			ID:    toString(record["personId"]),
			Name:  toString(record["name"]),
			Birth: toIntPtr(record["birth"]),
		})
	}
	return people, nil
}

// ExportMovies returns every Movie node ordered by id.
func (r *Repository) ExportMovies(ctx context.Context) ([]domain.Movie, error) {
	res, err := r.client.Execute(ctx, graph.ReadAccess, exportMoviesCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("export movies query: %w", err)
	}
	movies := make([]domain.Movie, 0, len(res.Records))
	for _, record := range res.Records {
		movies = append(movies, domain.Movie{
			ID:    toString(record["movieId"]),
			Title: toString(record["title"]),
			Year:  int(toInt64(record["year"])),
		})
	}
	return movies, nil
}

// ExportCast returns every STARRED_IN edge.
func (r *Repository) ExportCast(ctx context.Context) ([]domain.CastLink, error) {
	res, err := r.client.Execute(ctx, graph.ReadAccess, exportCastCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("export cast query: %w", err)
	}
	cast := make([]domain.CastLink, 0, len(res.Records))
	for _, record := range res.Records {
		cast = append(cast, domain.CastLink{
			PersonID: toString(record["personId"]),
			MovieID:  toString(record["movieId"]),
		})
	}
	return cast, nil
}

// Export reads the three relations concurrently.
func (r *Repository) Export(ctx context.Context) (dataset.Dataset, error) {
	var ds dataset.Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ds.People, err = r.ExportPeople(gctx)
		return err
	})
	g.Go(func() (err error) {
		ds.Movies, err = r.ExportMovies(gctx)
		return err
	})
	g.Go(func() (err error) {
		ds.Cast, err = r.ExportCast(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return dataset.Dataset{}, err
	}
	return ds, nil
}

func personProperties(p domain.Person) map[string]any {
	props := map[string]any{
		"id":    p.ID,
		"name":  p.Name,
		"birth": nil,
	}
	if p.Birth != nil {
		props["birth"] = int64(*p.Birth)
	}
	return props
}

func movieProperties(m domain.Movie) map[string]any {
	props := map[string]any{
		"id":    m.ID,
		"title": m.Title,
		"year":  nil,
	}
	if m.Year != 0 {
		props["year"] = int64(m.Year)
	}
	return props
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func toIntPtr(val any) *int {
	switch val.(type) {
	case int64, int, float64:
		v := int(toInt64(val))
		return &v
	default:
		return nil
	}
}

var schemaStatements = []string{
	"CREATE CONSTRAINT person_id IF NOT EXISTS FOR (p:Person) REQUIRE p.personId IS UNIQUE",
	"CREATE CONSTRAINT movie_id IF NOT EXISTS FOR (m:Movie) REQUIRE m.movieId IS UNIQUE",
}

const upsertPeopleCypher = `
UNWIND $rows AS row
MERGE (p:Person {personId: row.id})
SET p.name = row.name, p.birth = row.birth
`

const upsertMoviesCypher = `
UNWIND $rows AS row
MERGE (m:Movie {movieId: row.id})
SET m.title = row.title, m.year = row.year
`

const linkCastCypher = `
UNWIND $rows AS row
MATCH (p:Person {personId: row.personId})
MATCH (m:Movie {movieId: row.movieId})
MERGE (p)-[:STARRED_IN]->(m)
RETURN count(*) AS linked
`

const exportPeopleCypher = `
MATCH (p:Person)
RETURN p.personId AS personId, p.name AS name, p.birth AS birth
ORDER BY personId
`

const exportMoviesCypher = `
MATCH (m:Movie)
RETURN m.movieId AS movieId, m.title AS title, m.year AS year
ORDER BY movieId
`

const exportCastCypher = `
MATCH (p:Person)-[:STARRED_IN]->(m:Movie)
RETURN p.personId AS personId, m.movieId AS movieId
ORDER BY personId, movieId
`
