package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCmd_Use(t *testing.T) {
	assert.Equal(t, "status", statusCmd.Use)
}

func TestStatusCmd_PrintsIndexInfo(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()
	corpusDir = "/srv/docs"
	generatorName = "extractive"

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"status"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Ready:      true")
	assert.Contains(t, out, "Chunks:     4")
	assert.Contains(t, out, "Vocabulary: 12 terms")
	assert.Contains(t, out, "/tmp/index.db")
	assert.Contains(t, out, "/srv/docs")
	assert.Contains(t, out, "extractive")
	assert.Contains(t, out, "Documents:  2")
}

func TestDocumentsCmd_ListsCorpus(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"documents"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "cloud_devops.txt")
	assert.Contains(t, buf.String(), "cybersecurity.txt")
}

func TestDocumentsCmd_Empty(t *testing.T) {
	idx, _, cleanup := setupTestServices()
	defer cleanup()
	idx.docs = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"documents"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "No documents found.")
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "quarry version")
}
