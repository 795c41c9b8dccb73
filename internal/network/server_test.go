package network

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/sillyql/internal/engine"
)

func postQuery(t *testing.T, h http.Handler, req QueryRequest) (*httptest.ResponseRecorder, QueryResponse) {
	t.Helper()
	body, err := json.Marshal(req)
	assert.NilError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body)))

	var resp QueryResponse
	if rec.Code == http.StatusOK {
		assert.NilError(t, json.NewDecoder(rec.Body).Decode(&resp))
	}
	return rec, resp
}

func TestQueryRunsScript(t *testing.T) {
	srv := NewServer(engine.New(nil, nil), false)

	rec, resp := postQuery(t, srv.Router(), QueryRequest{Script: "CREATE t 1 int n\nINSERT INTO t 2 ROWS\n4\n7\nPRINT FROM t 1 n WHERE n > 5\n"})
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Equal(t, resp.Output, "New table t with column(s) n created\n"+
		"Added 2 rows to t from position 0 to 1\n"+
		"n \n7 \nPrinted 1 matching rows from t\n")
}

func TestSessionsShareTables(t *testing.T) {
	srv := NewServer(engine.New(nil, nil), false)

	_, _ = postQuery(t, srv.Router(), QueryRequest{Script: "CREATE t 1 int n\n"})
	_, resp := postQuery(t, srv.Router(), QueryRequest{Script: "PRINT FROM t 1 n ALL\n", Quiet: true})
	assert.Equal(t, resp.Output, "Printed 0 matching rows from t\n")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables", nil))
	assert.Equal(t, rec.Code, http.StatusOK)

	var list map[string][]string
	assert.NilError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.DeepEqual(t, list["tables"], []string{"t"})
}

func TestDescribeTable(t *testing.T) {
	srv := NewServer(engine.New(nil, nil), false)
	_, _ = postQuery(t, srv.Router(), QueryRequest{Script: "CREATE t 2 string int name n\nGENERATE FOR t hash INDEX ON n\n"})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables/t", nil))
	assert.Equal(t, rec.Code, http.StatusOK)

	var info struct {
		Name    string `json:"name"`
		Columns []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"columns"`
		Rows        int    `json:"rows"`
		Index       string `json:"index"`
		IndexColumn string `json:"index_column"`
	}
	assert.NilError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, info.Name, "t")
	assert.Equal(t, len(info.Columns), 2)
	assert.Equal(t, info.Columns[1].Type, "int")
	assert.Equal(t, info.Index, "hash")
	assert.Equal(t, info.IndexColumn, "n")

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables/ghost", nil))
	assert.Equal(t, rec.Code, http.StatusNotFound)
}

func TestBadRequest(t *testing.T) {
	srv := NewServer(engine.New(nil, nil), false)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString("{not json")))
	assert.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestHealth(t *testing.T) {
	srv := NewServer(engine.New(nil, nil), false)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, rec.Code, http.StatusOK)
}
