package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventgraph/graph"
	"eventgraph/models"
	"eventgraph/utils"
)

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func setupServer(t *testing.T, version string) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := models.NewStore()
	require.NoError(t, store.Load(models.Dataset{
		Users:     []models.User{{ID: "1", Username: "ana", Email: "ana@example.com"}},
		Locations: []models.Location{{ID: "1", Name: "hall"}},
		Events:    []models.Event{{ID: "1", Title: "launch", LocationID: "1", UserID: "1"}},
	}))

	schema, err := graph.NewSchema(graph.NewResolver(store, version, utils.NewCacheInvalidator(rdb), nil))
	require.NoError(t, err)

	s := gin.New()
	t.Cleanup(RegisterRoutes(s, schema, store, Options{Redis: rdb, CacheTTL: time.Minute}))
	return s, mr
}

func post(s *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.ServeHTTP(w, req)
	return w
}

func get(s *gin.Engine, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape(query), nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) gqlResponse {
	t.Helper()
	var resp gqlResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestPostQuery(t *testing.T) {
	s, _ := setupServer(t, graph.VersionV2)

	w := post(s, `{"query":"query($id: ID!) { event(id: $id) { title users { username } } }","variables":{"id":"1"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"event":{"title":"launch","users":[{"username":"ana"}]}}`, string(resp.Data))
}

func TestNotFoundCarriesExtensions(t *testing.T) {
	s, _ := setupServer(t, graph.VersionV2)

	resp := decode(t, post(s, `{"query":"{ location(id: 9) { id } }"}`))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Location not found!", resp.Errors[0].Message)
	assert.Equal(t, "NOT_FOUND", resp.Errors[0].Extensions["code"])
}

func TestGetQuery_CachedUntilMutation(t *testing.T) {
	s, mr := setupServer(t, graph.VersionV2)
	const q = `{ users { username } }`

	w := get(s, q)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	w = get(s, q)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.NotEmpty(t, mr.Keys())

	// a mutation purges cached queries
	w = post(s, `{"query":"mutation { addUser(data: {username: \"bo\", email: \"bo@example.com\"}) { id } }"}`)
	require.Empty(t, decode(t, w).Errors)
	assert.Empty(t, mr.Keys())

	w = get(s, q)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"users":[{"username":"ana"},{"username":"bo"}]}`, string(decode(t, w).Data))
}

func TestGetMutation_Refused(t *testing.T) {
	s, mr := setupServer(t, graph.VersionV2)

	w := get(s, `mutation { deleteUser(id: 1) { id } }`)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
	assert.Empty(t, mr.Keys())

	// nothing was deleted
	assert.JSONEq(t, `{"users":[{"username":"ana"}]}`, string(decode(t, get(s, `{ users { username } }`)).Data))
}

func TestV1_RejectsMutations(t *testing.T) {
	s, _ := setupServer(t, graph.VersionV1)

	resp := decode(t, post(s, `{"query":"mutation { deleteAllEvents { count } }"}`))
	assert.NotEmpty(t, resp.Errors)

	resp = decode(t, post(s, `{"query":"{ event(id: 404) { id } }"}`))
	assert.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"event":null}`, string(resp.Data))
}

func TestBadRequests(t *testing.T) {
	s, _ := setupServer(t, graph.VersionV2)

	w := post(s, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(s, `{"variables":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing query.")

	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql?query=%7Busers%7Bid%7D%7D&variables=%7Bbad", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndPlayground(t *testing.T) {
	s, _ := setupServer(t, graph.VersionV2)

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var health struct {
		Status string         `json:"status"`
		Counts map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 1, health.Counts["events"])

	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/graphql")
}

func newLimitedServer(t *testing.T, opts Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := models.NewStore()
	require.NoError(t, store.Load(models.Dataset{
		Users: []models.User{{ID: "1"}, {ID: "2"}, {ID: "3"}},
	}))
	schema, err := graph.NewSchema(graph.NewResolver(store, graph.VersionV2, nil, nil))
	require.NoError(t, err)

	s := gin.New()
	t.Cleanup(RegisterRoutes(s, schema, store, opts))
	return s
}

func TestMutationQuota(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := newLimitedServer(t, Options{Redis: rdb, CacheTTL: time.Minute, QuotaPerDay: 1})

	require.Equal(t, http.StatusOK, post(s, `{"query":"mutation { deleteUser(id: 1) { id } }"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, post(s, `{"query":"mutation { deleteUser(id: 2) { id } }"}`).Code)
	// the refused mutation cannot be replayed over GET either
	assert.Equal(t, http.StatusMethodNotAllowed, get(s, `mutation { deleteUser(id: 3) { id } }`).Code)

	// queries are not counted, over POST or GET
	w := post(s, `{"query":"{ users { id } }"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"users":[{"id":"2"},{"id":"3"}]}`, string(decode(t, w).Data))
	assert.Equal(t, http.StatusOK, get(s, `{ users { id } }`).Code)
}

func TestWriteLimiter(t *testing.T) {
	s := newLimitedServer(t, Options{RPS: 100, Burst: 100, WriteRPS: 0.001, WriteBurst: 1})

	require.Equal(t, http.StatusOK, post(s, `{"query":"mutation { deleteUser(id: 1) { id } }"}`).Code)
	w := post(s, `{"query":"mutation { deleteUser(id: 2) { id } }"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// reads use the global bucket only
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(s, `{"query":"{ users { id } }"}`).Code)
	}
}
