package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
)

type stubIngestor struct {
	mu        sync.Mutex
	people    []domain.Person
	movies    []domain.Movie
	cast      []domain.CastLink
	batches   int
	peopleErr error
	castErr   error
}

func (s *stubIngestor) UpsertPeople(_ context.Context, people []domain.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++
	if s.peopleErr != nil {
		return s.peopleErr
	}
	s.people = append(s.people, people...)
	return nil
}

func (s *stubIngestor) UpsertMovies(_ context.Context, movies []domain.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++
	s.movies = append(s.movies, movies...)
	return nil
}

func (s *stubIngestor) LinkCast(_ context.Context, cast []domain.CastLink) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++
	if s.castErr != nil {
		return 0, s.castErr
	}
	s.cast = append(s.cast, cast...)
	return len(cast), nil
}

func testDataset(n int) dataset.Dataset {
	var ds dataset.Dataset
	for i := range n {
		id := string(rune('a' + i))
		ds.People = append(ds.People, domain.Person{ID: "p" + id, Name: "Person " + id})
		ds.Movies = append(ds.Movies, domain.Movie{ID: "m" + id, Title: "Movie " + id})
		ds.Cast = append(ds.Cast, domain.CastLink{PersonID: "p" + id, MovieID: "m" + id})
	}
	return ds
}

func TestBulkIngestor_IngestDataset(t *testing.T) {
	repo := &stubIngestor{}
	ingestor := NewBulkIngestor(repo, 3, 2, nil)

	report, err := ingestor.IngestDataset(context.Background(), testDataset(5))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := IngestReport{People: 5, Movies: 5, CastLinks: 5, LinkedCast: 5}
	if report != want {
		t.Errorf("expected %+v, got %+v", want, report)
	}
	if len(repo.people) != 5 || len(repo.movies) != 5 || len(repo.cast) != 5 {
		t.Errorf("unexpected ingested sizes: %d people, %d movies, %d cast", len(repo.people), len(repo.movies), len(repo.cast))
	}
	// 5 rows in batches of 2 is 3 batches per relation.
	if repo.batches != 9 {
		t.Errorf("expected 9 batches, got %d", repo.batches)
	}
}

func TestBulkIngestor_CollectsBatchErrors(t *testing.T) {
	boom := errors.New("write failed")
	repo := &stubIngestor{peopleErr: boom}
	ingestor := NewBulkIngestor(repo, 2, 2, nil)

	_, err := ingestor.IngestDataset(context.Background(), testDataset(4))
	var taskErr *TaskError
	if !errors.As(err, &taskErr) {
		t.Fatalf("expected TaskError, got %v", err)
	}
	if len(taskErr.Errors) != 2 {
		t.Errorf("expected 2 failed batches, got %d", len(taskErr.Errors))
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected errors.Is to reach the batch error")
	}
	if len(repo.movies) != 0 {
		t.Errorf("movies must not be written after people fail")
	}
}

func TestBulkIngestor_CastErrorKeepsPartialReport(t *testing.T) {
	repo := &stubIngestor{castErr: errors.New("link failed")}
	ingestor := NewBulkIngestor(repo, 1, 10, nil)

	report, err := ingestor.IngestDataset(context.Background(), testDataset(3))
	if err == nil {
		t.Fatal("expected error")
	}
	if report.People != 3 || report.LinkedCast != 0 {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestBulkIngestor_Cancelled(t *testing.T) {
	repo := &stubIngestor{}
	ingestor := NewBulkIngestor(repo, 2, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ingestor.IngestDataset(ctx, testDataset(3)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBulkIngestor_EmptyDataset(t *testing.T) {
	repo := &stubIngestor{}
	report, err := NewBulkIngestor(repo, 0, 0, nil).IngestDataset(context.Background(), dataset.Dataset{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report != (IngestReport{}) || repo.batches != 0 {
		t.Errorf("expected nothing ingested, got %+v with %d batches", report, repo.batches)
	}
}
