package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/catalog"
	"github.com/vanshika/degrees/internal/domain"
)

func TestDescribe(t *testing.T) {
	store, _ := catalog.Load(
		[]domain.Person{
			{ID: "102", Name: "Kevin Bacon"},
			{ID: "129", Name: "Tom Cruise"},
			{ID: "158", Name: "Tom Hanks"},
		},
		[]domain.Movie{
			{ID: "104257", Title: "A Few Good Men", Year: 1992},
			{ID: "109830", Title: "Forrest Gump", Year: 1994},
		},
		nil,
	)

	steps, err := Describe(store, "129", []domain.Hop{
		{MovieID: "104257", PersonID: "102"},
		{MovieID: "109830", PersonID: "158"},
	})
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "1: Tom Cruise and Kevin Bacon starred in A Few Good Men", steps[0].String())
	assert.Equal(t, "2: Kevin Bacon and Tom Hanks starred in Forrest Gump", steps[1].String())
	assert.Equal(t, 1994, steps[1].Movie.Year)

	steps, err = Describe(store, "129", nil)
	require.NoError(t, err)
	assert.Empty(t, steps)

	_, err = Describe(store, "nobody", nil)
	assert.ErrorIs(t, err, ErrUnknownPerson)

	_, err = Describe(store, "129", []domain.Hop{{MovieID: "missing", PersonID: "102"}})
	assert.ErrorIs(t, err, ErrUnknownMovie)

	_, err = Describe(store, "129", []domain.Hop{{MovieID: "104257", PersonID: "missing"}})
	assert.ErrorIs(t, err, ErrUnknownPerson)
}
