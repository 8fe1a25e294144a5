package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger/internal/logger"
)

func init() {
	logger.Init("test")
}

func TestRun_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "success.db")
	stdout := new(bytes.Buffer)

	args := []string{"-user", "alice", "-email", "alice@example.com", "-password", "password123", "-driver", "sqlite", "-db", dbPath}
	err := run(args, new(bytes.Buffer), stdout, new(bytes.Buffer))

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "User alice created successfully")
}

func TestRun_DuplicateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "duplicate.db")
	args := []string{"-user", "alice", "-password", "password123", "-driver", "sqlite", "-db", dbPath}

	require.NoError(t, run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)))

	err := run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email already registered")
}

func TestRun_MissingUserFlag(t *testing.T) {
	stdout := new(bytes.Buffer)

	err := run([]string{"-password", "password123"}, new(bytes.Buffer), stdout, new(bytes.Buffer))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags: user")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRun_InteractivePassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "interactive.db")
	stdout := new(bytes.Buffer)
	stdin := bytes.NewBufferString("interactive_secret\n")

	err := run([]string{"-user", "bob", "-driver", "sqlite", "-db", dbPath}, stdin, stdout, new(bytes.Buffer))

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Password: ")
	assert.Contains(t, stdout.String(), "User bob created successfully")
}

func TestRun_EmptyPassword(t *testing.T) {
	stdin := bytes.NewBufferString("   \n")

	err := run([]string{"-user", "carol", "-driver", "sqlite", "-db", filepath.Join(t.TempDir(), "empty.db")}, stdin, new(bytes.Buffer), new(bytes.Buffer))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}
