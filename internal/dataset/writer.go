package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteDir serializes the dataset into people.csv, movies.csv and stars.csv
// under dir, creating it if needed.
func WriteDir(dir string, ds Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	people := [][]string{{"id", "name", "birth"}}
	for _, p := range ds.People {
		people = append(people, []string{p.ID, p.Name, p.BirthYear()})
	}
	if err := writeCSV(filepath.Join(dir, PeopleFile), people); err != nil {
		return err
	}

	movies := [][]string{{"id", "title", "year"}}
	for _, m := range ds.Movies {
		year := ""
		if m.Year != 0 {
			year = strconv.Itoa(m.Year)
		}
		movies = append(movies, []string{m.ID, m.Title, year})
	}
	if err := writeCSV(filepath.Join(dir, MoviesFile), movies); err != nil {
		return err
	}

	stars := [][]string{{"person_id", "movie_id"}}
	for _, c := range ds.Cast {
		stars = append(stars, []string{c.PersonID, c.MovieID})
	}
	return writeCSV(filepath.Join(dir, StarsFile), stars)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("encode csv for %s: %w", path, err)
	}
	return file.Close()
}
