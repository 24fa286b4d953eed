package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/catalog"
)

func TestGenerate_Shape(t *testing.T) {
	gen := New(Config{NumPeople: 200, NumMovies: 50, MaxCastSize: 4, NameCollisionChance: 0.2, UnknownBirthChance: 0.3, Seed: 7})

	ds, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Len(t, ds.People, 200)
	assert.Len(t, ds.Movies, 50)
	assert.GreaterOrEqual(t, len(ds.Cast), 50)
	assert.LessOrEqual(t, len(ds.Cast), 200)

	store, stats := catalog.Load(ds.People, ds.Movies, ds.Cast)
	assert.Zero(t, stats.SkippedCastLinks, "every cast row references generated records")
	assert.Equal(t, len(ds.Cast), stats.CastLinks, "cast rows are unique per movie")

	var collisions, unknownBirths int
	for _, p := range ds.People {
		if len(store.PersonIDsForName(p.Name)) > 1 {
			collisions++
		}
		if p.Birth == nil {
			unknownBirths++
		}
	}
	assert.Positive(t, collisions, "expected some shared names")
	assert.Positive(t, unknownBirths, "expected some unknown birth years")

	for _, m := range ds.Movies {
		stars := store.StarsOf(m.ID)
		assert.NotEmpty(t, stars)
		assert.LessOrEqual(t, len(stars), 4)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{NumPeople: 30, NumMovies: 10, Seed: 99}

	first, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)
	second, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNew_AppliesDefaults(t *testing.T) {
	cfg := New(Config{NumPeople: 3, MaxCastSize: 10, NameCollisionChance: 2}).Config()

	assert.Equal(t, DefaultConfig().NumMovies, cfg.NumMovies)
	assert.Equal(t, 3, cfg.MaxCastSize, "cast size is capped by the number of people")
	assert.Equal(t, 1.0, cfg.NameCollisionChance)
	assert.NotZero(t, cfg.Seed)
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{NumPeople: 10, NumMovies: 10, Seed: 1}).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
