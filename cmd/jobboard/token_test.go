package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"jobboard/internal/auth"
	"jobboard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("STORE_BACKEND", "memory")

	var out bytes.Buffer
	cmd := newTokenCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--user", "U42", "--ttl", "1h"})
	require.NoError(t, cmd.Execute())

	uid, err := auth.NewJWT("cli-secret").Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "U42", uid)
}

func TestTokenCmdRequiresUser(t *testing.T) {
	cmd := newTokenCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestOpenStoreMemory(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	store, closeStore, err := openStore(context.Background(), cfg, true)
	require.NoError(t, err)
	defer closeStore()
	assert.NotNil(t, store)
}
