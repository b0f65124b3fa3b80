package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"phonebook/internal/phonebook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phone(s string) *string { return &s }

// runStoreSuite exercises the Store contract against one backend.
func runStoreSuite(t *testing.T, open func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("EmptyStore", func(t *testing.T) {
		s := open(t)
		all, err := s.All(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("AddPreservesOrder", func(t *testing.T) {
		s := open(t)
		names := []string{"Charlie", "Alice", "Bob"}
		for _, name := range names {
			_, err := s.Add(ctx, phonebook.NewPerson{Name: name, Street: "S", City: "C"})
			require.NoError(t, err)
		}

		all, err := s.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i, p := range all {
			assert.Equal(t, names[i], p.Name)
			assert.NotEmpty(t, p.ID)
		}
	})

	t.Run("PhoneRoundTrip", func(t *testing.T) {
		s := open(t)
		withPhone, err := s.Add(ctx, phonebook.NewPerson{Name: "Arto", Phone: phone("040-1"), Street: "S", City: "C"})
		require.NoError(t, err)
		require.NotNil(t, withPhone.Phone)

		noPhone, err := s.Add(ctx, phonebook.NewPerson{Name: "Venla", Street: "S", City: "C"})
		require.NoError(t, err)
		assert.Nil(t, noPhone.Phone)

		emptyPhone, err := s.Add(ctx, phonebook.NewPerson{Name: "Matti", Phone: phone(""), Street: "S", City: "C"})
		require.NoError(t, err)
		assert.Nil(t, emptyPhone.Phone, "empty phone is stored as absent")

		found, err := s.FindByName(ctx, "Arto")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "040-1", *found.Phone)
		assert.Equal(t, withPhone.ID, found.ID)

		found, err = s.FindByName(ctx, "Venla")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Nil(t, found.Phone)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		s := open(t)
		_, err := s.Add(ctx, phonebook.NewPerson{Name: "Ada", Street: "S", City: "C"})
		require.NoError(t, err)

		_, err = s.Add(ctx, phonebook.NewPerson{Name: "Ada", Street: "Other", City: "Other"})
		assert.ErrorIs(t, err, ErrDuplicateName)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("FindMissing", func(t *testing.T) {
		s := open(t)
		found, err := s.FindByName(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Seed", func(t *testing.T) {
		s := open(t)
		require.NoError(t, Seed(ctx, s))
		require.NoError(t, Seed(ctx, s), "seeding twice is harmless")

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(SeedPersons()), n)
	})

	t.Run("ConcurrentAdds", func(t *testing.T) {
		s := open(t)
		var wg sync.WaitGroup
		errs := make([]error, 20)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				// Everyone races on the same name; exactly one wins.
				_, errs[i] = s.Add(ctx, phonebook.NewPerson{Name: "Same", Street: "S", City: "C"})
			}(i)
		}
		wg.Wait()

		wins := 0
		for _, err := range errs {
			if err == nil {
				wins++
			} else {
				assert.ErrorIs(t, err, ErrDuplicateName)
			}
		}
		assert.Equal(t, 1, wins)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "persons.db"))
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("PHONEBOOK_TEST_POSTGRES")
	if dsn == "" {
		t.Skip("PHONEBOOK_TEST_POSTGRES not set")
	}
	runStoreSuite(t, func(t *testing.T) Store {
		s, err := NewPostgresStore(context.Background(), dsn)
		require.NoError(t, err)
		_, err = s.pool.Exec(context.Background(), "TRUNCATE persons")
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "persons.db")

	s, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	_, err = s.Add(ctx, phonebook.NewPerson{Name: "Ada", Phone: phone("555"), Street: "Main St", City: "Metropolis"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer s2.Close()

	version, err := GetSchemaVersion(s2.db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
	assert.True(t, columnExists(s2.db, "persons", "created_at"))

	all, err := s2.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ada", all[0].Name)
	assert.Equal(t, "555", *all[0].Phone)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, "memory")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	path := filepath.Join(t.TempDir(), "x.db")
	s, err = Open(ctx, "sqlite://"+path)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLiteStore{}, s)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_, err := s.Add(ctx, phonebook.NewPerson{Name: "Ada", Phone: phone("1"), Street: "S", City: "C"})
	require.NoError(t, err)

	all, _ := s.All(ctx)
	*all[0].Phone = "mutated"
	all[0].Name = "mutated"

	again, _ := s.All(ctx)
	assert.Equal(t, "Ada", again[0].Name)
	assert.Equal(t, "1", *again[0].Phone)
}
