package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFixture = `version: "1.0"
types:
  - name: book
    attributes:
      - name: name
        uniquify: true
seeds:
  - type: book
    attrs:
      name: Excession
`

func writeTestFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testFixture), 0644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRequestCommand(t *testing.T) {
	out, err := runCommand(t, "request", "--fixture", writeTestFixture(t), "GET", "/books.xml")
	require.NoError(t, err)
	assert.Contains(t, out, "<books>")
	assert.Contains(t, out, "<name>Excession</name>")
}

func TestRequestCommand_NotFound(t *testing.T) {
	_, err := runCommand(t, "request", "--fixture", writeTestFixture(t), "GET", "/unknown.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/unknown.xml")
	// The near-miss hint names the registered patterns.
	assert.Contains(t, err.Error(), "books")
}

func TestRoutesCommand(t *testing.T) {
	out, err := runCommand(t, "routes", "--fixture", writeTestFixture(t))
	require.NoError(t, err)
	assert.Contains(t, out, "GET")
	assert.Contains(t, out, "books")
	assert.Contains(t, out, "default")
}

func TestRequestCommand_MissingFixture(t *testing.T) {
	_, err := runCommand(t, "request", "--fixture", filepath.Join(t.TempDir(), "nope.yaml"), "GET", "/books.xml")
	assert.Error(t, err)
}
