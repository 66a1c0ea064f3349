package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spoiler-storefront/internal/domain"
)

func TestFile_SaveLoadRoundTrip(t *testing.T) {
	f := NewFile(t.TempDir())

	lines := []domain.CartLine{
		{
			ID:        1001,
			ProductID: 1,
			Name:      "Tábua Rústica Grande",
			UnitPrice: dec("89.90"),
			Quantity:  2,
			Customizations: &domain.LineCustomization{
				Engraving:      "Família Silva",
				AdditionalCost: dec("25"),
			},
		},
		{ID: 1002, ProductID: 3, Name: "Kit Utensílios Premium", UnitPrice: dec("149.90"), Quantity: 1},
	}

	require.NoError(t, f.Save(lines))

	loaded, err := f.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, lines[0].ID, loaded[0].ID)
	assert.Equal(t, lines[0].Name, loaded[0].Name)
	assert.True(t, lines[0].UnitPrice.Equal(loaded[0].UnitPrice))
	require.NotNil(t, loaded[0].Customizations)
	assert.Equal(t, "Família Silva", loaded[0].Customizations.Engraving)
	assert.Nil(t, loaded[1].Customizations)
}

func TestFile_LoadMissingIsEmpty(t *testing.T) {
	f := NewFile(t.TempDir())
	loaded, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFile_SaveNilWritesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(dir)

	require.NoError(t, f.Save(nil))

	data, err := os.ReadFile(filepath.Join(dir, StorageKey+".json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	loaded, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFile_SaveOverwritesPrevious(t *testing.T) {
	f := NewFile(t.TempDir())

	require.NoError(t, f.Save([]domain.CartLine{{ID: 1, ProductID: 1, UnitPrice: dec("89.90"), Quantity: 1}}))
	require.NoError(t, f.Save([]domain.CartLine{{ID: 2, ProductID: 2, UnitPrice: dec("69.90"), Quantity: 3}}))

	loaded, err := f.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(2), loaded[0].ID)
	assert.Equal(t, 3, loaded[0].Quantity)
}

func TestFile_LoadCorruptFileErrors(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, StorageKey+".json"), []byte("{broken"), 0o644))

	_, err := f.Load()
	assert.Error(t, err)
}
