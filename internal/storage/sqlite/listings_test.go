package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seededListings = 15

// goose keeps global state, so these tests do not run in parallel.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestListings_Search(t *testing.T) {
	ctx := context.Background()
	repo := NewListings(newTestDB(t))

	t.Run("term matches title cheapest first", func(t *testing.T) {
		got, err := repo.Search(ctx, "samsung")
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "SAM-A05S", got[0].SKURef)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].PriceIDR, got[i].PriceIDR)
		}
	})

	t.Run("term matches store name", func(t *testing.T) {
		got, err := repo.Search(ctx, "roxy")
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, l := range got {
			assert.Equal(t, "Roxy Mas Cell", l.StoreName)
		}
	})

	t.Run("empty term returns newest", func(t *testing.T) {
		got, err := repo.Search(ctx, "  ")
		require.NoError(t, err)
		require.Len(t, got, seededListings)
		assert.Greater(t, got[0].ID, got[1].ID)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		got, err := repo.Search(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("quote in term is bound", func(t *testing.T) {
		got, err := repo.Search(ctx, "' OR 1=1 --")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestListings_CreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewListings(newTestDB(t))

	in := core.Listing{
		StoreID:       "ST-100",
		StoreName:     "Toko Uji",
		SKURef:        "SAM-S24",
		ListingTitle:  "Galaxy S24 Uji",
		PriceIDR:      12000000,
		Stock:         2,
		ItemCondition: "Baru",
	}
	id, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Greater(t, id, int64(seededListings))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	in.ID = id
	assert.Equal(t, in, got)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, seededListings+1)
}

func TestListings_GetMissing(t *testing.T) {
	repo := NewListings(newTestDB(t))
	_, err := repo.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListings_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewListings(newTestDB(t))

	before, err := repo.Get(ctx, 1)
	require.NoError(t, err)

	price := int64(11999000)
	require.NoError(t, repo.Update(ctx, 1, core.ListingUpdate{PriceIDR: &price}))

	after, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, price, after.PriceIDR)
	assert.Equal(t, before.Stock, after.Stock, "absent fields untouched")
	assert.Equal(t, before.ListingTitle, after.ListingTitle)

	stock := 0
	title := "Habis"
	require.NoError(t, repo.Update(ctx, 1, core.ListingUpdate{Stock: &stock, ListingTitle: &title}))
	after, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Stock)
	assert.Equal(t, "Habis", after.ListingTitle)

	err = repo.Update(ctx, 9999, core.ListingUpdate{PriceIDR: &price})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListings_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewListings(newTestDB(t))

	require.NoError(t, repo.Delete(ctx, 2))
	_, err := repo.Get(ctx, 2)
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 2), core.ErrNotFound)
}

func TestSpecs_List(t *testing.T) {
	specs, err := NewSpecs(newTestDB(t)).List(context.Background())
	require.NoError(t, err)
	require.Len(t, specs, 13)

	var s24 core.Spec
	for _, s := range specs {
		if s.SKU == "SAM-S24" {
			s24 = s
		}
	}
	assert.Equal(t, "Galaxy S24", s24.Model)
	assert.Equal(t, "Exynos 2400", s24.Processor)
	assert.Equal(t, 8, s24.RAMGB)
	assert.Equal(t, 4000, s24.BatteryMAh)
	assert.InDelta(t, 6.2, s24.ScreenSize, 0.001)
	assert.True(t, s24.NFCSupport)

	for _, s := range specs {
		if s.SKU == "SAM-A05S" {
			assert.False(t, s.NFCSupport)
		}
	}
}

func TestSpecs_Candidates(t *testing.T) {
	repo := NewSpecs(newTestDB(t))

	tests := []struct {
		name   string
		brand  string
		minRAM int
		want   []string
	}{
		{name: "brand and ram", brand: "samsung", minRAM: 12, want: []string{"SAM-S23U"}},
		{name: "brand only", brand: "Samsung", want: []string{"SAM-S23U", "SAM-A05S", "SAM-S24"}},
		{name: "model name matches", brand: "galaxy", minRAM: 8, want: []string{"SAM-S23U", "SAM-S24"}},
		{name: "ram only", minRAM: 16, want: []string{"ASU-ROG8"}},
		{name: "apple flagship", brand: "apple", minRAM: 8, want: []string{"APL-IP15PM"}},
		{name: "unknown brand", brand: "nokia", want: []string{}},
		{name: "brand is bound not spliced", brand: "' OR 1=1 --", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs, err := repo.Candidates(context.Background(), tt.brand, tt.minRAM)
			require.NoError(t, err)

			got := []string{}
			for _, s := range specs {
				got = append(got, s.SKU)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestSpecs_CandidatesHeavyLoad(t *testing.T) {
	specs, err := NewSpecs(newTestDB(t)).Candidates(context.Background(), "", 12)
	require.NoError(t, err)
	require.Len(t, specs, 8)

	for _, s := range specs {
		assert.GreaterOrEqual(t, s.RAMGB, 12, s.SKU)
	}
	assert.Equal(t, "ASU-ROG8", specs[0].SKU)
}
