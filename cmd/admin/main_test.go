package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"postboard/internal/models"
	"postboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func run(t *testing.T, open connector, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	root.ResetCommands()
	root.AddCommand(seedCmd(open), purgeCmd(open))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedCommand(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	out, err := run(t, func() (*gorm.DB, error) { return db, nil }, "seed", "--posts", "3", "--likes-per-post", "0", "--seed", "5")
	require.NoError(t, err)
	assert.Equal(t, "Seeded 3 posts and 0 likes\n", out)
}

func TestSeedCommand_RejectsNegative(t *testing.T) {
	called := false
	_, err := run(t, func() (*gorm.DB, error) { called = true; return nil, nil }, "seed", "--posts=-1")
	assert.Error(t, err)
	assert.False(t, called)
}

func TestPurgeCommand(t *testing.T) {
	t.Run("requires force", func(t *testing.T) {
		_, err := run(t, func() (*gorm.DB, error) {
			t.Fatal("must not connect")
			return nil, nil
		}, "purge")
		assert.ErrorContains(t, err, "--force")
	})

	t.Run("deletes everything", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		require.NoError(t, db.Create(&models.Post{Content: "a"}).Error)
		require.NoError(t, db.Create(&models.Post{Content: "b"}).Error)

		out, err := run(t, func() (*gorm.DB, error) { return db, nil }, "purge", "--force")
		require.NoError(t, err)
		assert.Equal(t, "Purged 2 posts\n", out)
	})

	t.Run("connection failure", func(t *testing.T) {
		_, err := run(t, func() (*gorm.DB, error) { return nil, errors.New("no db") }, "purge", "--force")
		assert.EqualError(t, err, "no db")
	})
}
