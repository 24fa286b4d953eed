package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vanshika/degrees/internal/catalog"
	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/logging"
	"github.com/vanshika/degrees/internal/search"
	"github.com/vanshika/degrees/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errPersonNotFound) && !errors.Is(err, errDataFilesNotFound) {
			fmt.Fprintf(os.Stderr, "degrees: %v\n", err)
		}
		os.Exit(1)
	}
}

// errDataFilesNotFound means the dataset directory lacks a relation file. The
// command has already explained this on its output.
var errDataFilesNotFound = errors.New("data files not found")

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "degrees [directory]",
		Short: "Find the degrees of separation between two actors",
		Long: `degrees loads people.csv, movies.csv and stars.csv from a directory,
asks for two names, and prints the shortest chain of shared movies
connecting them.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			dir := cfg.Dataset.Dir
			if len(args) == 1 {
				dir = args[0]
			}
			if !cmd.Flags().Changed("max-depth") {
				maxDepth = cfg.Search.MaxDepth
			}
			if maxDepth < 0 {
				return fmt.Errorf("max-depth must be non-negative, got %d", maxDepth)
			}

			logger := logging.NewWithWriter(errOut, cfg.Logging).With("component", "cli")

			fmt.Fprintln(out, "Loading data...")
			ds, err := dataset.LoadDir(cmd.Context(), dir)
			if errors.Is(err, dataset.ErrMissingFile) {
				fmt.Fprintf(out, "Error: Data files not found in %s\n", dir)
				fmt.Fprintf(out, "Please ensure the directory exists and contains %s, %s, and %s\n",
					dataset.PeopleFile, dataset.MoviesFile, dataset.StarsFile)
				return fmt.Errorf("%w: %w", errDataFilesNotFound, err)
			}
			if err != nil {
				return err
			}
			if ds.InvalidBirths > 0 {
				logger.Warn("unparseable birth years loaded as unknown", "people", ds.InvalidBirths)
			}
			store, stats := catalog.Load(ds.People, ds.Movies, ds.Cast)
			if stats.SkippedCastLinks > 0 {
				logger.Warn("skipped cast rows referencing unknown records", "skipped", stats.SkippedCastLinks)
			}
			logger.Debug("catalog loaded", "dir", dir, "people", stats.People, "movies", stats.Movies, "cast", stats.CastLinks)
			fmt.Fprintln(out, "Data loaded.")

			svc := service.NewDegreesService(store, search.Options{MaxDepth: maxDepth}, nil)
			return newSession(svc, in, out).run(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum degrees to search (0 = unbounded, defaults to SEARCH_MAX_DEPTH)")
	return cmd
}
