package keystore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/locallink/locallink-go/pkg/keystore"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		s := keystore.NewMemory()
		defer s.Close()

		_, err := s.Get(context.Background(), keystore.KeyAuthToken)
		require.ErrorIs(t, err, keystore.ErrNotFound)
	})

	t.Run("round trips a record", func(t *testing.T) {
		t.Parallel()

		s := keystore.NewMemory()
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Set(ctx, keystore.KeyAuthToken, []byte("tok")))

		got, err := s.Get(ctx, keystore.KeyAuthToken)
		require.NoError(t, err)
		require.Equal(t, []byte("tok"), got)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		t.Parallel()

		s := keystore.NewMemory()
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "k", []byte("abc")))

		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		got[0] = 'X'

		again, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, []byte("abc"), again)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()

		s := keystore.NewMemory()
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "k", []byte("v")))
		require.NoError(t, s.Delete(ctx, "k"))
		require.NoError(t, s.Delete(ctx, "k"))

		_, err := s.Get(ctx, "k")
		require.ErrorIs(t, err, keystore.ErrNotFound)
	})

	t.Run("closed store rejects operations", func(t *testing.T) {
		t.Parallel()

		s := keystore.NewMemory()
		require.NoError(t, s.Close())

		ctx := context.Background()
		require.ErrorIs(t, s.Set(ctx, "k", nil), keystore.ErrClosed)
		_, err := s.Get(ctx, "k")
		require.ErrorIs(t, err, keystore.ErrClosed)
		require.ErrorIs(t, s.Delete(ctx, "k"), keystore.ErrClosed)
	})
}

func TestFile(t *testing.T) {
	t.Parallel()

	t.Run("round trips a record across instances", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ctx := context.Background()

		s, err := keystore.NewFile(dir)
		require.NoError(t, err)
		require.NoError(t, s.Set(ctx, keystore.KeyCartItems, []byte(`[{"id":"1"}]`)))
		require.NoError(t, s.Close())

		reopened, err := keystore.NewFile(dir)
		require.NoError(t, err)
		defer reopened.Close()

		got, err := reopened.Get(ctx, keystore.KeyCartItems)
		require.NoError(t, err)
		require.Equal(t, []byte(`[{"id":"1"}]`), got)
	})

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		s, err := keystore.NewFile(t.TempDir())
		require.NoError(t, err)
		defer s.Close()

		_, err = s.Get(context.Background(), "missing")
		require.ErrorIs(t, err, keystore.ErrNotFound)
	})

	t.Run("overwrite replaces previous value", func(t *testing.T) {
		t.Parallel()

		s, err := keystore.NewFile(t.TempDir())
		require.NoError(t, err)
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "k", []byte("old")))
		require.NoError(t, s.Set(ctx, "k", []byte("new")))

		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, []byte("new"), got)
	})

	t.Run("delete removes the backing file and is idempotent", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := keystore.NewFile(dir)
		require.NoError(t, err)
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Set(ctx, keystore.KeyAuthToken, []byte("tok")))
		require.NoError(t, s.Delete(ctx, keystore.KeyAuthToken))
		require.NoError(t, s.Delete(ctx, keystore.KeyAuthToken))

		_, err = os.Stat(filepath.Join(dir, keystore.KeyAuthToken))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("rejects keys unsafe as file names", func(t *testing.T) {
		t.Parallel()

		s, err := keystore.NewFile(t.TempDir())
		require.NoError(t, err)
		defer s.Close()

		ctx := context.Background()
		for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
			require.ErrorIs(t, s.Set(ctx, key, []byte("v")), keystore.ErrInvalidKey, "key %q", key)
		}
	})

	t.Run("record files are private to the user", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := keystore.NewFile(dir)
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.Set(context.Background(), keystore.KeyAuthToken, []byte("tok")))

		info, err := os.Stat(filepath.Join(dir, keystore.KeyAuthToken))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}
