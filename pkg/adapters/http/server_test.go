package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plainspeak/plainspeak"
	httpadapter "github.com/plainspeak/plainspeak/pkg/adapters/http"
	"github.com/plainspeak/plainspeak/pkg/adapters/memory"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
	"github.com/plainspeak/plainspeak/pkg/session"
	"github.com/plainspeak/plainspeak/pkg/vars"
	"github.com/plainspeak/plainspeak/pkg/verbs"
)

type runResponse struct {
	Session string `json:"session"`
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason"`
	Value   any    `json:"value"`
	Stored  string `json:"stored"`
	Error   string `json:"error"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	catalog := lexicon.Default()
	builtins := verbs.Builtins(&verbs.Config{Out: io.Discard})
	usages := lexicon.NewUsages()
	for _, u := range builtins {
		require.NoError(t, usages.Register(u))
	}

	factory := func(store *vars.Store) httpadapter.Engine {
		return plainspeak.New(
			plainspeak.WithStore(store),
			plainspeak.WithCatalog(catalog),
			plainspeak.WithUsages(builtins...),
		)
	}
	sessions := session.NewManager(memory.NewStore())

	srv := httptest.NewServer(httpadapter.NewHandler(factory, sessions, catalog, usages))
	t.Cleanup(srv.Close)
	return srv
}

func postRun(t *testing.T, srv *httptest.Server, sentence, sessionID string) runResponse {
	t.Helper()
	body, err := json.Marshal(map[string]string{"sentence": sentence, "session": sessionID})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/run", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out runResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestServer_Healthz(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_RunAssignsSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("served content"), 0o644))

	srv := newServer(t)
	out := postRun(t, srv, fmt.Sprintf("GET [text] FROM {%s}.", path), "")

	require.NotEmpty(t, out.Session)
	require.True(t, out.Valid)
	require.Equal(t, "served content", out.Value)
	require.Equal(t, "text", out.Stored)
}

func TestServer_VariablesPersistAcrossRequests(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(src, []byte("round trip"), 0o644))

	srv := newServer(t)
	first := postRun(t, srv, fmt.Sprintf("GET [x] FROM {%s}.", src), "sess-1")
	require.True(t, first.Valid)
	require.Empty(t, first.Error)

	second := postRun(t, srv, fmt.Sprintf("SAVE [x] TO {%s}.", dst), "sess-1")
	require.True(t, second.Valid)
	require.Empty(t, second.Error)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "round trip", string(data))
}

func TestServer_InvalidSentenceIsPayload(t *testing.T) {
	srv := newServer(t)
	out := postRun(t, srv, "GET [x].", "")
	require.False(t, out.Valid)
	require.Contains(t, out.Reason, "FROM")
	require.Empty(t, out.Error)
}

func TestServer_RunErrorIsPayload(t *testing.T) {
	dir := t.TempDir()
	srv := newServer(t)
	out := postRun(t, srv, fmt.Sprintf("SAVE [ghost] TO {%s}.", filepath.Join(dir, "o.txt")), "")
	require.NotEmpty(t, out.Error)
	require.Contains(t, out.Error, "ghost")
}

func TestServer_MissingSentenceIsBadRequest(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Post(srv.URL+"/run", "application/json", bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_VerbsListing(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/verbs")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []struct {
		Name   string   `json:"name"`
		Shape  string   `json:"shape"`
		Usages []string `json:"usages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	byName := make(map[string][]string)
	for _, v := range out {
		byName[v.Name] = v.Usages
	}
	require.Contains(t, byName, "GET")
	require.Contains(t, byName["GET"], "TextFromFile")
}

func TestServer_SessionLifecycle(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	postRun(t, srv, fmt.Sprintf("GET [x] FROM {%s}.", path), "doomed")

	resp, err := http.Get(srv.URL + "/sessions")
	require.NoError(t, err)
	var listing struct {
		Sessions []string `json:"sessions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	resp.Body.Close()
	require.Contains(t, listing.Sessions, "doomed")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/doomed", nil)
	require.NoError(t, err)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	require.Equal(t, http.StatusNoContent, del.StatusCode)

	resp, err = http.Get(srv.URL + "/sessions")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	resp.Body.Close()
	require.NotContains(t, listing.Sessions, "doomed")
}
