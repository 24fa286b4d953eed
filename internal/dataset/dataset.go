// Package dataset reads and writes the three CSV relations the degrees graph
// is built from: people.csv, movies.csv and stars.csv.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/degrees/internal/domain"
)

// File names expected inside a dataset directory.
const (
	PeopleFile = "people.csv"
	MoviesFile = "movies.csv"
	StarsFile  = "stars.csv"
)

// ErrMissingFile indicates a relation file is absent from the dataset directory.
var ErrMissingFile = errors.New("dataset file not found")

// Dataset contains the raw relations.
type Dataset struct {
	People []domain.Person
	Movies []domain.Movie
	Cast   []domain.CastLink

	// InvalidBirths counts people whose birth column could not be parsed and
	// was loaded as unknown.
	InvalidBirths int
}

// LoadDir reads people.csv, movies.csv and stars.csv from dir.
func LoadDir(ctx context.Context, dir string) (Dataset, error) {
	var ds Dataset

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		people, err := readFile(gctx, filepath.Join(dir, PeopleFile), func(r io.Reader) ([]domain.Person, error) {
			people, invalid, err := readPeople(r)
			ds.InvalidBirths = invalid
			return people, err
		})
		ds.People = people
		return err
	})
	g.Go(func() error {
		movies, err := readFile(gctx, filepath.Join(dir, MoviesFile), ReadMovies)
		ds.Movies = movies
		return err
	})
	g.Go(func() error {
		cast, err := readFile(gctx, filepath.Join(dir, StarsFile), ReadCast)
		ds.Cast = cast
		return err
	})
	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func readFile[T any](ctx context.Context, path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	records, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// ReadPeople parses rows with id, name and birth columns. A birth that is not
// a whole year is treated as unknown.
func ReadPeople(r io.Reader) ([]domain.Person, error) {
	people, _, err := readPeople(r)
	return people, err
}

func readPeople(r io.Reader) ([]domain.Person, int, error) {
	var (
		people  []domain.Person
		invalid int
	)
	err := readRows(r, []string{"id", "name", "birth"}, func(_ int, row map[string]string) error {
		person := domain.Person{ID: row["id"], Name: row["name"]}
		if birth := strings.TrimSpace(row["birth"]); birth != "" {
			if year, err := strconv.Atoi(birth); err == nil {
				person.Birth = &year
			} else {
				invalid++
			}
		}
		people = append(people, person)
		return nil
	})
	return people, invalid, err
}

// ReadMovies parses rows with id, title and year columns.
func ReadMovies(r io.Reader) ([]domain.Movie, error) {
	var movies []domain.Movie
	err := readRows(r, []string{"id", "title", "year"}, func(line int, row map[string]string) error {
		movie := domain.Movie{ID: row["id"], Title: row["title"]}
		if year := strings.TrimSpace(row["year"]); year != "" {
			v, err := strconv.Atoi(year)
			if err != nil {
				return fmt.Errorf("line %d: invalid year %q", line, year)
			}
			movie.Year = v
		}
		movies = append(movies, movie)
		return nil
	})
	return movies, err
}

// ReadCast parses rows with person_id and movie_id columns.
func ReadCast(r io.Reader) ([]domain.CastLink, error) {
	var cast []domain.CastLink
	err := readRows(r, []string{"person_id", "movie_id"}, func(_ int, row map[string]string) error {
		cast = append(cast, domain.CastLink{PersonID: row["person_id"], MovieID: row["movie_id"]})
		return nil
	})
	return cast, err
}

// readRows maps each data row onto the header names, the way a dictionary
// reader would, and hands it to fn together with its 1-based line number.
func readRows(r io.Reader, required []string, fn func(line int, row map[string]string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return errors.New("missing header row")
	}
	if err != nil {
		return err
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return fmt.Errorf("missing column %q", name)
		}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line, _ := reader.FieldPos(0)
		row := make(map[string]string, len(columns))
		for name, idx := range columns {
			if idx < len(record) {
				row[name] = record[idx]
			}
		}
		if err := fn(line, row); err != nil {
			return err
		}
	}
}
