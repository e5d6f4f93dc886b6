package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAdminCommands(t *testing.T) {
	t.Setenv("YATUBE_DATABASE_DRIVER", "sqlite")
	t.Setenv("YATUBE_DATABASE_URL", filepath.Join(t.TempDir(), "admin.db"))
	t.Setenv("YATUBE_AUTH_SECRET", "test-secret")
	t.Setenv("YATUBE_LOG_LEVEL", "ERROR")

	_, err := run(t, "migrate")
	require.NoError(t, err)

	out, err := run(t, "group", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No groups yet")

	out, err = run(t, "group", "create", "--title", "Cats", "--slug", "cats", "--description", "all about cats")
	require.NoError(t, err)
	assert.Contains(t, out, "(cats)")

	_, err = run(t, "group", "create", "--title", "Cats again", "--slug", "cats")
	assert.ErrorContains(t, err, "already exists")

	out, err = run(t, "group", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "SLUG")
	assert.Contains(t, out, "Cats")

	out, err = run(t, "user", "create", "--username", "leo", "--password", "correct-horse")
	require.NoError(t, err)
	assert.Contains(t, out, "(leo)")

	_, err = run(t, "user", "create", "--username", "leo", "--password", "correct-horse")
	assert.ErrorContains(t, err, "already exists")
}

func TestAdminRejectsMemoryDriver(t *testing.T) {
	t.Setenv("YATUBE_DATABASE_DRIVER", "memory")
	t.Setenv("YATUBE_AUTH_SECRET", "test-secret")

	_, err := run(t, "group", "list")
	assert.ErrorContains(t, err, "nothing to administer")
}
