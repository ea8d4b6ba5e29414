package cli

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/tickerboard/internal/server"
)

func fixtureBackend(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(server.New(server.Config{DataDir: "../../data"}).Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestTableCommand(t *testing.T) {
	base := fixtureBackend(t)

	out, err := runCLI(t, "table", "--base-url", base, "--sort", "price", "--desc")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], "TICKER"))
	assert.True(t, strings.HasPrefix(lines[1], "NVDA"), lines[1])
}

func TestTableCommandQuery(t *testing.T) {
	base := fixtureBackend(t)

	out, err := runCLI(t, "table", "--base-url", base, "-q", "micro")
	require.NoError(t, err)
	assert.Contains(t, out, "MSFT")
	assert.NotContains(t, out, "AAPL")

	out, err = runCLI(t, "table", "--base-url", base, "-q", "no such company")
	require.NoError(t, err)
	assert.Equal(t, "No data\n", out)
}

func TestTableCommandWritesSparklines(t *testing.T) {
	base := fixtureBackend(t)
	dir := filepath.Join(t.TempDir(), "svg")

	_, err := runCLI(t, "table", "--base-url", base, "--svg", dir)
	require.NoError(t, err)

	// AAPL closed down, MSFT up.
	aapl, err := os.ReadFile(filepath.Join(dir, "AAPL.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(aapl), `<path d="M `)
	assert.Contains(t, string(aapl), `stroke="#dc2626"`)

	msft, err := os.ReadFile(filepath.Join(dir, "MSFT.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(msft), `stroke="#059669"`)

	// ABBV has no sparkline.
	_, err = os.Stat(filepath.Join(dir, "ABBV.svg"))
	assert.True(t, os.IsNotExist(err))
}

func TestSVGFileName(t *testing.T) {
	assert.Equal(t, "BRK.B.svg", svgFileName("BRK.B"))
	assert.Equal(t, "passwd.svg", svgFileName("../../etc/passwd"))
	assert.Equal(t, "", svgFileName(""))
	assert.Equal(t, "", svgFileName(" "))
}

func TestTableCommandRejectsUnknownSort(t *testing.T) {
	_, err := runCLI(t, "table", "--sort", "sparkline")
	require.Error(t, err)
}

func TestNewsCommand(t *testing.T) {
	base := fixtureBackend(t)

	out, err := runCLI(t, "news", "aapl", "--base-url", base, "--page-size", "10", "--page", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 3 of 3")
	assert.NotContains(t, out, "next:")

	out, err = runCLI(t, "news", "AAPL", "--base-url", base, "--page-size", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 of 3 (next: --page 2)")
	assert.Contains(t, out, "Reuters")
}

func TestNewsCommandMissingTicker(t *testing.T) {
	base := fixtureBackend(t)

	_, err := runCLI(t, "news", "ZZZZ", "--base-url", base)
	require.Error(t, err)
	assert.Equal(t, "failed to fetch news (404)", err.Error())
}

func TestInvalidConfigFails(t *testing.T) {
	_, err := runCLI(t, "table", "--page-size", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "news.page_size")
}
