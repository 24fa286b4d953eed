package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/domain"
)

const (
	smallPeople = `id,name,birth
102,Kevin Bacon,1958
129,Tom Cruise,1962
1697,Chris Sarandon,
`
	smallMovies = `id,title,year
104257,A Few Good Men,1992
95953,"Rain Man",1988
`
	smallStars = `person_id,movie_id
102,104257
129,104257
129,95953
`
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadDir(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		PeopleFile: smallPeople,
		MoviesFile: smallMovies,
		StarsFile:  smallStars,
	})

	ds, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, ds.People, 3)
	assert.Equal(t, "Kevin Bacon", ds.People[0].Name)
	require.NotNil(t, ds.People[0].Birth)
	assert.Equal(t, 1958, *ds.People[0].Birth)
	assert.Nil(t, ds.People[2].Birth, "empty birth is unknown")

	require.Len(t, ds.Movies, 2)
	assert.Equal(t, domain.Movie{ID: "95953", Title: "Rain Man", Year: 1988}, ds.Movies[1])

	assert.Equal(t, []domain.CastLink{
		{PersonID: "102", MovieID: "104257"},
		{PersonID: "129", MovieID: "104257"},
		{PersonID: "129", MovieID: "95953"},
	}, ds.Cast)
}

func TestLoadDir_MissingFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		PeopleFile: smallPeople,
		MoviesFile: smallMovies,
	})

	_, err := LoadDir(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingFile)
	assert.Contains(t, err.Error(), StarsFile)
}

func TestReadPeople_UnparseableBirthIsUnknown(t *testing.T) {
	people, err := ReadPeople(strings.NewReader("id,name,birth\n1,A,c.1960\n2,B,1971\n"))
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Nil(t, people[0].Birth)
	require.NotNil(t, people[1].Birth)
	assert.Equal(t, 1971, *people[1].Birth)
}

func TestLoadDir_CountsInvalidBirths(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		PeopleFile: "id,name,birth\n1,A,nineteen\n2,B,c.1960\n3,C,\n",
		MoviesFile: smallMovies,
		StarsFile:  smallStars,
	})

	ds, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, ds.People, 3)
	assert.Equal(t, 2, ds.InvalidBirths, "empty birth is unknown but not invalid")
	for _, p := range ds.People {
		assert.Nil(t, p.Birth, p.ID)
	}
}

func TestReadPeople_Errors(t *testing.T) {
	_, err := ReadPeople(strings.NewReader("id,name\n1,A\n"))
	assert.ErrorContains(t, err, `missing column "birth"`)

	_, err = ReadPeople(strings.NewReader(""))
	assert.ErrorContains(t, err, "missing header")
}

func TestReadCast_ColumnOrderFollowsHeader(t *testing.T) {
	cast, err := ReadCast(strings.NewReader("\ufeffmovie_id,person_id\nm1,p1\n"))
	require.NoError(t, err)
	assert.Equal(t, []domain.CastLink{{PersonID: "p1", MovieID: "m1"}}, cast)
}

func TestWriteDir_LoadsBack(t *testing.T) {
	birth := 1970
	want := Dataset{
		People: []domain.Person{{ID: "1", Name: "Doe, Jane", Birth: &birth}, {ID: "2", Name: "John"}},
		Movies: []domain.Movie{{ID: "m1", Title: `The "Quoted" Movie`, Year: 2001}, {ID: "m2", Title: "Undated"}},
		Cast:   []domain.CastLink{{PersonID: "1", MovieID: "m1"}},
	}
	dir := filepath.Join(t.TempDir(), "nested")

	require.NoError(t, WriteDir(dir, want))
	got, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
