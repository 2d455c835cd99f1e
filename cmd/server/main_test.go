package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/physref/internal/config"
	"github.com/phrazzld/physref/internal/platform/migrate"
	"github.com/phrazzld/physref/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Database: config.DatabaseConfig{
			URL: "sqlite:///" + filepath.Join(t.TempDir(), "physics.db"),
		},
		Auth: config.AuthConfig{
			SessionSecret:          strings.Repeat("s", 32),
			SessionLifetimeMinutes: 60,
			BcryptCost:             bcrypt.MinCost,
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctx := context.Background()
	cfg := testConfig(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := openDatabase(ctx, cfg.Database, log)
	require.NoError(t, err)
	require.NoError(t, db.migrate(ctx, migrate.CommandUp, log))

	app, err := newApplication(cfg, log, db)
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(func() {
		srv.Close()
		app.cleanup()
	})
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestServer_AccountFlow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.PostForm(srv.URL+"/register", url.Values{
		"username":         {"alice"},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Contains(t, body, "Registration successful. You can now log in.")

	resp, err = client.PostForm(srv.URL+"/register", url.Values{
		"username":         {"alice"},
		"password":         {"other12"},
		"confirm_password": {"other12"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Username is already taken")

	resp, err = client.PostForm(srv.URL+"/login", url.Values{"username": {"alice"}, "password": {"nope123"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid username or password")

	resp, err = client.PostForm(srv.URL+"/login", url.Values{"username": {"alice"}, "password": {"secret1"}})
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, body, "Logged in successfully")
	assert.Contains(t, body, `href="/logout"`)

	resp, err = client.Get(srv.URL + "/account")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Signed in as <strong>alice</strong>")

	resp, err = client.Get(srv.URL + "/logout")
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "You have been logged out")
	assert.Contains(t, body, `href="/login"`)

	resp, err = client.Get(srv.URL + "/account")
	require.NoError(t, err)
	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Contains(t, readBody(t, resp), "Please log in to view this page.")
}

func TestServer_PagesAndCalculators(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.Get(srv.URL + "/formulas/electromagnetism")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "I = U / R")

	resp, err = client.Get(srv.URL + "/formulas/alchemy")
	require.NoError(t, err)
	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, readBody(t, resp), "Section not found")

	resp, err = client.PostForm(srv.URL+"/calculator/mechanics", url.Values{
		"mass": {"2"}, "acceleration": {"3"}, "calculate_force": {""},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "6 N")

	resp, err = client.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, "OK", readBody(t, resp))

	resp, err = client.Get(srv.URL + "/missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
	_ = readBody(t, resp)
}

func TestOpenDatabase_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	_, err := openDatabase(context.Background(), config.DatabaseConfig{URL: "mysql://db"}, slog.Default())
	assert.Error(t, err)
}

func TestMigrateCommand(t *testing.T) {
	t.Setenv("PHYSREF_DATABASE_URL", "sqlite:///"+filepath.Join(t.TempDir(), "physics.db"))
	t.Setenv("PHYSREF_AUTH_SESSION_SECRET", strings.Repeat("k", 32))
	t.Setenv("PHYSREF_SERVER_LOG_LEVEL", "error")

	for _, command := range []string{"up", "status", "down"} {
		cmd := newRootCommand()
		cmd.SetArgs([]string{"migrate", command})
		require.NoError(t, cmd.ExecuteContext(context.Background()), command)
	}

	cmd := newRootCommand()
	cmd.SetArgs([]string{"migrate", "sideways"})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestHashPasswords(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	in := strings.NewReader("secret1\n\nтест123\r\n")
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	require.NoError(t, hashPasswords(in, &out, hasher))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.NoError(t, hasher.Compare(lines[0], "secret1"))
	assert.NoError(t, hasher.Compare(lines[1], "тест123"))
}
