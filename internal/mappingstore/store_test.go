package mappingstore

import (
	"os"
	"path/filepath"
	"testing"

	"moneydash/ingest/internal/matcher"
	"moneydash/ingest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transaction_mappings.yaml")
	store, err := New(path, matcher.NewLevenshteinMatcher(), 0.6)
	require.NoError(t, err)
	return store
}

func TestNewSeedsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transaction_mappings.yaml")

	store, err := New(path, matcher.NewLevenshteinMatcher(), 0.6)
	require.NoError(t, err)

	// Missing file is seeded with the default pick-lists and persisted
	assert.FileExists(t, path)
	assert.Contains(t, store.Picklist(ListAccountTypes), "expense")
	assert.Contains(t, store.Picklist(ListTags), "subscription")
	assert.Empty(t, store.Keys())
}

func TestCorruptStoreReinitializes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transaction_mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{mappings: [not: valid"), 0600))

	store, err := New(path, matcher.NewLevenshteinMatcher(), 0.6)
	require.NoError(t, err)

	// Corruption falls back to a fresh default store, never an error
	assert.Empty(t, store.Keys())
	assert.NotEmpty(t, store.Picklist(ListCategories))
}

func TestUpsertAndRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transaction_mappings.yaml")

	store, err := New(path, matcher.NewLevenshteinMatcher(), 0.6)
	require.NoError(t, err)

	classification := models.Classification{
		AccountType: "expense",
		Category1:   "Food & Dining",
		Tags:        []string{"essential"},
		Payee:       "Coffee Shop",
	}
	require.NoError(t, store.Upsert("COFFEE SHOP", classification))

	// A second handle on the same file sees the identical structure
	reloaded, err := New(path, matcher.NewLevenshteinMatcher(), 0.6)
	require.NoError(t, err)
	assert.Equal(t, store.Document(), reloaded.Document())

	got, key, ok := reloaded.Lookup("COFFEE SHOP")
	require.True(t, ok)
	assert.Equal(t, "COFFEE SHOP", key)
	assert.Equal(t, classification, got)
}

func TestUpsertOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Upsert("COFFEE SHOP", models.Classification{Category1: "Food & Dining"}))
	require.NoError(t, store.Upsert("COFFEE SHOP", models.Classification{Category1: "Entertainment"}))

	got, _, ok := store.Lookup("COFFEE SHOP")
	require.True(t, ok)
	assert.Equal(t, "Entertainment", got.Category1)
	assert.Len(t, store.Keys(), 1)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "COFFEE SHOP", NormalizeKey("  COFFEE   SHOP  "))
	assert.Equal(t, "", NormalizeKey("   "))
}

func TestLookupKeyNormalization(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert("  COFFEE   SHOP ", models.Classification{Category1: "Food & Dining"}))

	_, key, ok := store.Lookup("COFFEE SHOP")
	require.True(t, ok)
	assert.Equal(t, "COFFEE SHOP", key)
}

func TestLookupSubstring(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert("COFFEE SHOP", models.Classification{Category1: "Food & Dining"}))

	// Containment works in both directions, case-insensitive
	_, key, ok := store.Lookup("coffee shop downtown #42")
	require.True(t, ok)
	assert.Equal(t, "COFFEE SHOP", key)

	_, key, ok = store.Lookup("coffee")
	require.True(t, ok)
	assert.Equal(t, "COFFEE SHOP", key)
}

func TestLookupFuzzy(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert("GROCERY STORE", models.Classification{Category1: "Shopping"}))

	// One typo, no containment: only the fuzzy fallback can match
	_, key, ok := store.Lookup("GROCERY STORF")
	require.True(t, ok)
	assert.Equal(t, "GROCERY STORE", key)

	// Far below the cutoff: no match rather than a wrong one
	_, _, ok = store.Lookup("AIRLINE TICKET")
	assert.False(t, ok)
}

func TestLookupExactWinsOverFuzzy(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert("SHOP", models.Classification{Category1: "Exact"}))
	require.NoError(t, store.Upsert("SHOPS AND MORE SHOPS", models.Classification{Category1: "Other"}))

	got, key, ok := store.Lookup("SHOP")
	require.True(t, ok)
	assert.Equal(t, "SHOP", key)
	assert.Equal(t, "Exact", got.Category1)
}

func TestLookupUnknown(t *testing.T) {
	store := newTestStore(t)
	_, _, ok := store.Lookup("NEVER SEEN BEFORE")
	assert.False(t, ok)

	_, _, ok = store.Lookup("")
	assert.False(t, ok)
}

func TestUpdatePicklistDeduplicates(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.UpdatePicklist(ListTags, []string{"a", "a", "b", " b ", ""}))
	assert.Equal(t, []string{"a", "b"}, store.Picklist(ListTags))
}

func TestUpdatePicklistPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transaction_mappings.yaml")

	store, err := New(path, matcher.NewLevenshteinMatcher(), 0.6)
	require.NoError(t, err)
	require.NoError(t, store.UpdatePicklist("projects", []string{"home", "travel"}))

	reloaded, err := New(path, matcher.NewLevenshteinMatcher(), 0.6)
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "travel"}, reloaded.Picklist("projects"))
}

func TestPicklistNames(t *testing.T) {
	store := newTestStore(t)
	names := store.PicklistNames()
	assert.Contains(t, names, ListCategories)
	assert.Contains(t, names, ListPayees)
	assert.Len(t, names, 5)
}
