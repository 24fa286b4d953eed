package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		people          = flag.Int("people", cfg.NumPeople, "number of people to generate")
		movies          = flag.Int("movies", cfg.NumMovies, "number of movies to generate")
		maxCast         = flag.Int("max-cast", cfg.MaxCastSize, "maximum stars credited per movie")
		collisionChance = flag.Float64("name-collision-chance", cfg.NameCollisionChance, "probability of reusing an existing person's name")
		unknownBirth    = flag.Float64("unknown-birth-chance", cfg.UnknownBirthChance, "probability of leaving a birth year blank")
		seed            = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir       = flag.String("output-dir", "data/generated", "directory to write people.csv, movies.csv and stars.csv")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(generator.Config{
		NumPeople:           *people,
		NumMovies:           *movies,
		MaxCastSize:         *maxCast,
		NameCollisionChance: *collisionChance,
		UnknownBirthChance:  *unknownBirth,
		Seed:                *seed,
	})
	ds, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := dataset.WriteDir(*outputDir, ds); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d people, %d movies and %d cast rows into %s\n", len(ds.People), len(ds.Movies), len(ds.Cast), *outputDir)
}
