package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestSearchCmd_PrintsRankedResults(t *testing.T) {
	_, qry, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "firewalls", "--limit", "5", "--role", "manager"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchLimit = 10
		searchRole = "public"
	}()

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, 5, qry.lastLimit)
	assert.Equal(t, domain.RoleManager, qry.lastRole)
	assert.Contains(t, buf.String(), "cybersecurity.txt")
	assert.Contains(t, buf.String(), "0.8123")
}

func TestSearchCmd_LoadsSnapshotWhenNoIndexIsLive(t *testing.T) {
	idx, _, cleanup := setupTestServices()
	defer cleanup()
	idx.info.Ready = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "firewalls"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, 1, idx.loadCalls)
	assert.Contains(t, buf.String(), "cybersecurity.txt")
}

func TestSearchCmd_MissingSnapshot(t *testing.T) {
	idx, _, cleanup := setupTestServices()
	defer cleanup()
	idx.info.Ready = false
	idx.loadErr = domain.ErrSnapshotNotFound

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "firewalls"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quarry index")
}

func TestSearchCmd_NoResults(t *testing.T) {
	_, qry, cleanup := setupTestServices()
	defer cleanup()
	qry.results = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "nothing matches"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "No results found.")
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short", 10))
	assert.Equal(t, "0123456789...", snippet("0123456789abcdef", 10))
}
