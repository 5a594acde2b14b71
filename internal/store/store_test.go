package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmoteca/filmoteca/internal/model"
)

func sampleCollection() *model.Collection {
	return &model.Collection{Movies: []model.Movie{
		{ID: 1, Title: "Alien", Director: "Ridley Scott", Year: 1979, Genre: "Sci-Fi", Rating: 8.5},
		{ID: 2, Title: "Heat", Director: "Michael Mann", Year: 1995, Genre: "Crime", Rating: 8.3, Description: "Cat and mouse in LA."},
	}}
}

// every backend must satisfy the same read-all/write-all contract
func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	backends := map[string]func(t *testing.T) Store{
		"json": func(t *testing.T) Store {
			path := filepath.Join(t.TempDir(), "data.json")
			require.NoError(t, EnsureJSONDocument(path))
			return NewJSONFileStore(path)
		},
		"sqlite": func(t *testing.T) Store {
			st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data.db"))
			require.NoError(t, err)
			return st
		},
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			st := open(t)
			defer func() { _ = st.Close() }()

			doc, err := st.ReadAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, doc.Movies)
			assert.NotNil(t, doc.Movies)

			want := sampleCollection()
			require.NoError(t, st.WriteAll(ctx, want))

			got, err := st.ReadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, want.Movies, got.Movies)

			// whole-document replace, including shrinking
			want.Movies = want.Movies[:1]
			require.NoError(t, st.WriteAll(ctx, want))
			got, err = st.ReadAll(ctx)
			require.NoError(t, err)
			require.Len(t, got.Movies, 1)
			assert.Equal(t, "Alien", got.Movies[0].Title)

			assert.NoError(t, st.HealthCheck(ctx))
		})
	}
}

func TestJSONFileStore_MissingFileIsStorageError(t *testing.T) {
	st := NewJSONFileStore(filepath.Join(t.TempDir(), "absent.json"))
	_, err := st.ReadAll(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsStorage(err))
}

func TestJSONFileStore_CorruptFileIsStorageError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	st := NewJSONFileStore(path)
	_, err := st.ReadAll(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsStorage(err))
}

func TestJSONFileStore_PreservesStoredOrder(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	st := NewJSONFileStore(path)

	doc := sampleCollection()
	doc.Movies[0], doc.Movies[1] = doc.Movies[1], doc.Movies[0]
	require.NoError(t, st.WriteAll(ctx, doc))

	got, err := st.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, []int{got.Movies[0].ID, got.Movies[1].ID})
}

func TestEnsureJSONDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "data.json")
	require.NoError(t, EnsureJSONDocument(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var c model.Collection
	require.NoError(t, json.Unmarshal(b, &c))
	assert.Empty(t, c.Movies)

	// second call must not replace an existing document
	seeded := sampleCollection()
	st := NewJSONFileStore(path)
	require.NoError(t, st.WriteAll(context.Background(), seeded))
	require.NoError(t, EnsureJSONDocument(path))

	got, err := st.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Movies, 2)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New("postgres", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}

func TestNew_SelectsBackends(t *testing.T) {
	dir := t.TempDir()

	jsonStore, err := New(BackendJSON, filepath.Join(dir, "d.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONFileStore{}, jsonStore)

	sqliteStore, err := New(BackendSQLite, filepath.Join(dir, "d.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, sqliteStore)
	_ = sqliteStore.Close()

	memStore, err := New(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, memStore)
}
