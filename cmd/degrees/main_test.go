package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
)

func intPtr(v int) *int { return &v }

func writeTestDataset(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "small")
	require.NoError(t, dataset.WriteDir(dir, dataset.Dataset{
		People: []domain.Person{
			{ID: "102", Name: "Kevin Bacon", Birth: intPtr(1958)},
			{ID: "129", Name: "Tom Cruise", Birth: intPtr(1962)},
			{ID: "163", Name: "Dustin Hoffman", Birth: intPtr(1937)},
			{ID: "914612", Name: "Emma Watson", Birth: intPtr(1990)},
			{ID: "914613", Name: "Emma Watson"},
		},
		Movies: []domain.Movie{
			{ID: "104257", Title: "A Few Good Men", Year: 1992},
			{ID: "95953", Title: "Rain Man", Year: 1988},
		},
		Cast: []domain.CastLink{
			{PersonID: "102", MovieID: "104257"},
			{PersonID: "129", MovieID: "104257"},
			{PersonID: "129", MovieID: "95953"},
			{PersonID: "163", MovieID: "95953"},
		},
	}))
	return dir
}

func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(input), &out, io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_PrintsChain(t *testing.T) {
	dir := writeTestDataset(t)

	out, err := runCLI(t, "Kevin Bacon\ndustin hoffman\n", dir)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Loading data...",
		"Data loaded.",
		"Name: Name: 2 degrees of separation.",
		"1: Kevin Bacon and Tom Cruise starred in A Few Good Men",
		"2: Tom Cruise and Dustin Hoffman starred in Rain Man",
		"",
	}, "\n"), out)
}

func TestCLI_NotConnected(t *testing.T) {
	dir := writeTestDataset(t)

	out, err := runCLI(t, "Kevin Bacon\nEmma Watson\n914613\n", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Which 'Emma Watson'?\n")
	assert.Contains(t, out, "ID: 914612, Name: Emma Watson, Birth: 1990\n")
	assert.Contains(t, out, "ID: 914613, Name: Emma Watson, Birth: \n")
	assert.True(t, strings.HasSuffix(out, "Intended Person ID: Not connected.\n"), out)
}

func TestCLI_PersonNotFound(t *testing.T) {
	dir := writeTestDataset(t)

	out, err := runCLI(t, "Nobody\n", dir)
	assert.True(t, errors.Is(err, errPersonNotFound))
	assert.True(t, strings.HasSuffix(out, "Person not found.\n"))

	out, err = runCLI(t, "Emma Watson\n42\n", dir)
	assert.ErrorIs(t, err, errPersonNotFound)
	assert.True(t, strings.HasSuffix(out, "Person not found.\n"))
}

func TestCLI_MaxDepth(t *testing.T) {
	dir := writeTestDataset(t)

	out, err := runCLI(t, "Kevin Bacon\nDustin Hoffman\n", "--max-depth", "1", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "Not connected.\n"))

	_, err = runCLI(t, "", "--max-depth", "-1", dir)
	assert.ErrorContains(t, err, "non-negative")
}

func TestCLI_MissingDataset(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	out, err := runCLI(t, "", dir)
	assert.ErrorIs(t, err, dataset.ErrMissingFile)
	assert.ErrorIs(t, err, errDataFilesNotFound)
	assert.Equal(t, "Loading data...\n"+
		"Error: Data files not found in "+dir+"\n"+
		"Please ensure the directory exists and contains people.csv, movies.csv, and stars.csv\n", out)
}

func TestCLI_EndOfInput(t *testing.T) {
	dir := writeTestDataset(t)

	_, err := runCLI(t, "Kevin Bacon\n", dir)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
