package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository"
)

func testWines() []models.Wine {
	return []models.Wine{
		{ID: 1, Name: "Opus One", Vineyard: "Opus One Winery", Year: 2018, Type: models.TypeRed, Region: "Napa Valley", Barcode: "1234567890123"},
		{ID: 2, Name: "Cloudy Bay", Vineyard: "Cloudy Bay Vineyards", Year: 2021, Type: models.TypeWhite, Region: "Marlborough", Barcode: "9876543210987"},
		{ID: 3, Name: "Whispering Angel", Vineyard: "Chateau d'Esclans", Year: 2022, Type: models.TypeRose, Region: "Provence"},
	}
}

func TestWineStore_Create_AssignsMaxPlusOne(t *testing.T) {
	store := NewWineStore(testWines(), nil)
	ctx := context.Background()

	wine := &models.Wine{Name: "New Wine", Vineyard: "Somewhere", Year: 2020, Type: models.TypeRed}
	require.NoError(t, store.Create(ctx, wine))
	assert.Equal(t, int64(4), wine.ID)
}

func TestWineStore_Create_DoesNotReuseDeletedIDs(t *testing.T) {
	store := NewWineStore(testWines(), nil)
	ctx := context.Background()

	// Remove the highest id, then create. Max of the remaining ids is 2,
	// so the new wine gets 3 again but never resurrects a lower hole.
	_, err := store.Delete(ctx, 3)
	require.NoError(t, err)
	_, err = store.Delete(ctx, 1)
	require.NoError(t, err)

	wine := &models.Wine{Name: "After Delete", Vineyard: "V", Year: 2019, Type: models.TypeRed}
	require.NoError(t, store.Create(ctx, wine))
	assert.Equal(t, int64(3), wine.ID)
}

func TestWineStore_Create_ResetsDerivedFields(t *testing.T) {
	store := NewWineStore(nil, nil)
	ctx := context.Background()

	wine := &models.Wine{Name: "W", Vineyard: "V", Year: 2019, Type: models.TypeRed, AverageRating: 4.9, ReviewCount: 12}
	require.NoError(t, store.Create(ctx, wine))
	assert.Zero(t, wine.AverageRating)
	assert.Zero(t, wine.ReviewCount)
	assert.False(t, wine.AddedDate.IsZero())
}

func TestWineStore_GetByBarcode(t *testing.T) {
	store := NewWineStore(testWines(), nil)
	ctx := context.Background()

	t.Run("ExactMatch", func(t *testing.T) {
		wine, err := store.GetByBarcode(ctx, "1234567890123")
		require.NoError(t, err)
		assert.Equal(t, "Opus One", wine.Name)
	})

	t.Run("NoNormalization", func(t *testing.T) {
		_, err := store.GetByBarcode(ctx, " 1234567890123 ")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := store.GetByBarcode(ctx, "9999999999999")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("EmptyCodeNeverMatchesBlankBarcode", func(t *testing.T) {
		// Wine 3 has no barcode stored; an empty query must not match it.
		_, err := store.GetByBarcode(ctx, "")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestWineStore_Search_CaseInsensitive(t *testing.T) {
	store := NewWineStore(testWines(), nil)
	ctx := context.Background()

	results, err := store.Search(ctx, "NAPA")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Opus One", results[0].Name)

	results, err = store.Search(ctx, "cloudy")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(2), results[0].ID)
}

func TestWineStore_Update_MergesPatch(t *testing.T) {
	store := NewWineStore(testWines(), nil)
	ctx := context.Background()

	region := "Sonoma"
	updated, err := store.Update(ctx, 1, repository.WinePatch{Region: &region})
	require.NoError(t, err)
	assert.Equal(t, "Sonoma", updated.Region)
	// untouched fields survive
	assert.Equal(t, "Opus One", updated.Name)
	assert.Equal(t, 2018, updated.Year)
}

func TestWineStore_Delete_ReturnsRemovedWine(t *testing.T) {
	store := NewWineStore(testWines(), nil)
	ctx := context.Background()

	removed, err := store.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Cloudy Bay", removed.Name)

	_, err = store.GetByID(ctx, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestWineStore_CopyOutSemantics(t *testing.T) {
	store := NewWineStore(testWines(), nil)
	ctx := context.Background()

	wine, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	wine.Name = "mutated"

	again, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Opus One", again.Name)
}

func TestWineStore_DelayHonorsContext(t *testing.T) {
	store := NewWineStore(testWines(), SimulatedLatency(time.Second, 2*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.GetAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
