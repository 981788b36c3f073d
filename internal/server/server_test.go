package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cbbgm/cbbgm/internal/store"
)

func testServer(t *testing.T, backend store.Backend) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(backend, zap.NewNop()).Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestPing(t *testing.T) {
	ts := testServer(t, store.NewMemory())

	resp, err := http.Get(ts.URL + "/api/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		OK      bool   `json:"ok"`
		Backend string `json:"backend"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.OK)
	require.Equal(t, "memory", body.Backend)
}

func TestPutGetList(t *testing.T) {
	ts := testServer(t, store.NewMemory())

	resp, err := http.Post(ts.URL+"/api/saves/put", "application/json",
		strings.NewReader(`{"key":"my-league","data":"{\"name\":\"My League\"}"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var put struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&put))
	require.True(t, put.OK)

	resp, err = http.Get(ts.URL + "/api/saves/get?key=my-league")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Key  string `json:"key"`
		Data string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "my-league", got.Key)
	require.JSONEq(t, `{"name":"My League"}`, got.Data)

	resp, err = http.Get(ts.URL + "/api/saves")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []struct {
		Key       string `json:"key"`
		Size      int    `json:"size"`
		UpdatedAt int64  `json:"updatedAt"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	require.Equal(t, "my-league", list[0].Key)
	require.NotZero(t, list[0].Size)
	require.NotZero(t, list[0].UpdatedAt)
}

func TestClientErrors(t *testing.T) {
	ts := testServer(t, store.NewMemory())

	cases := []struct {
		name   string
		do     func() (*http.Response, error)
		status int
	}{
		{"get without key", func() (*http.Response, error) {
			return http.Get(ts.URL + "/api/saves/get")
		}, http.StatusBadRequest},
		{"get unknown key", func() (*http.Response, error) {
			return http.Get(ts.URL + "/api/saves/get?key=nope")
		}, http.StatusNotFound},
		{"put without data", func() (*http.Response, error) {
			return http.Post(ts.URL+"/api/saves/put", "application/json",
				strings.NewReader(`{"key":"k"}`))
		}, http.StatusBadRequest},
		{"put with bad body", func() (*http.Response, error) {
			return http.Post(ts.URL+"/api/saves/put", "application/json",
				strings.NewReader(`{`))
		}, http.StatusBadRequest},
		{"put with wrong method", func() (*http.Response, error) {
			return http.Get(ts.URL + "/api/saves/put")
		}, http.StatusMethodNotAllowed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := tc.do()
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

// failingBackend simulates a broken storage backend.
type failingBackend struct{}

func (failingBackend) Name() string                                   { return "failing" }
func (failingBackend) List(context.Context) ([]store.Entry, error)    { return nil, errors.New("boom") }
func (failingBackend) Get(context.Context, string) (store.Record, error) {
	return store.Record{}, errors.New("boom")
}
func (failingBackend) Put(context.Context, string, string) error { return errors.New("boom") }
func (failingBackend) Close() error                              { return nil }

func TestBackendFailuresReturn500(t *testing.T) {
	ts := testServer(t, failingBackend{})

	for _, u := range []string{"/api/saves", "/api/saves/get?key=k"} {
		resp, err := http.Get(ts.URL + u)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusInternalServerError, resp.StatusCode, u)
	}

	resp, err := http.Post(ts.URL+"/api/saves/put", "application/json",
		strings.NewReader(`{"key":"k","data":"d"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
