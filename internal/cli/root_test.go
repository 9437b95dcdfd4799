package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/contacts/internal/cli/config"
	"github.com/leapstack-labs/contacts/internal/cli/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"version", "serve", "list", "seed", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"config", "backend", "database", "log-level", "log-format", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_Version(t *testing.T) {
	testutil.Chdir(t, t.TempDir())

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "contacts v"+Version)
}

func TestRootCmd_InvalidBackend(t *testing.T) {
	testutil.Chdir(t, t.TempDir())

	_, err := execute(t, "--backend", "oracle", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestRootCmd_SeedAndListWithFlags(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	db := filepath.Join(dir, "flag.db")

	out, err := execute(t, "--database", db, "seed", filepath.Join("seeds", "contacts.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 3 contacts")

	out, err = execute(t, "--database", db, "list", "-q", "turing")
	require.NoError(t, err)
	assert.Contains(t, out, "Alan Turing")
	assert.NotContains(t, out, "Lovelace")

	// The memory backend starts empty on every run
	out, err = execute(t, "--backend", "memory", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No contacts")
}

func TestRootCmd_Completion(t *testing.T) {
	testutil.Chdir(t, t.TempDir())

	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "contacts")
}
