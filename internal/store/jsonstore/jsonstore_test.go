package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/safety360/internal/store"
)

func TestGetMissing(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Get("safety360-state-v1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := New(dir)
	require.NoError(t, s.Set("k", []byte(`{"a":1}`)))

	b, err := s.Get("k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(b))

	_, err = os.Stat(filepath.Join(dir, "k.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "k.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestInvalidKey(t *testing.T) {
	s := New(t.TempDir())
	assert.Error(t, s.Set("../escape", []byte("x")))
	_, err := s.Get("")
	assert.Error(t, err)
}
