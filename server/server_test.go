package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gridbase/command"
	"gridbase/registry"
	"gridbase/schema"
)

func newTestServer(t *testing.T) *Server {
	dir := t.TempDir()
	reg := registry.New()
	tbl, err := schema.New("sales", []schema.Column{{Name: "Amount", Type: schema.REAL}})
	require.NoError(t, err)
	tbl.Rows = []schema.Row{{"Amount": schema.NewReal(100.5)}}
	require.NoError(t, reg.Mutate(func(h *registry.Handle) error { return h.Insert(tbl) }))

	tagsPath := filepath.Join(dir, "commands.tag")
	require.NoError(t, os.WriteFile(tagsPath, []byte("urgent\n"), 0o644))

	return New(reg, command.DefaultEnv(dir), tagsPath, nil)
}

func TestHandleExecute(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(map[string]interface{}{
		"command": "COPY_TABLE",
		"params":  map[string]string{"tableName": "sales", "newName": "sales2"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/execute", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	_, ok := s.reg.Get("sales2")
	require.True(t, ok)
}

func TestHandleExecuteNotFound(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(map[string]interface{}{
		"command": "DELETE_TABLE",
		"params":  map[string]string{"tableName": "missing"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/execute", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleTags(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, []string{"urgent"}, got)
}
