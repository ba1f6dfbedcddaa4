package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/movieapp/internal/biz"
	"github.com/cinelog/movieapp/internal/conf"
	"github.com/cinelog/movieapp/internal/data"
	"github.com/cinelog/movieapp/internal/service"
)

type movieJSON struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Year      *int32   `json:"year"`
	Genre     *string  `json:"genre"`
	Watched   bool     `json:"watched"`
	Rating    *float64 `json:"rating"`
	CreatedAt string   `json:"createdAt"`
}

type testClient struct {
	t      *testing.T
	srv    *khttp.Server
	cookie *http.Cookie
}

func newTestServer(t *testing.T) *khttp.Server {
	return newTestServerWithAuth(t, &conf.Auth{Username: "admin", Password: "1234", LoginRate: 100, LoginBurst: 100})
}

func newTestServerWithAuth(t *testing.T, auth *conf.Auth) *khttp.Server {
	t.Helper()
	logger := log.DefaultLogger

	d, cleanup, err := data.NewData(&conf.Data{Database: &conf.Data_Database{Driver: data.DriverMemory}}, logger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	creds, err := data.NewCredentialStore(auth, logger)
	require.NoError(t, err)
	sessionUC := biz.NewSessionUseCase(auth, creds, data.NewSessionRepo(d, logger), logger)
	movieUC := biz.NewMovieUseCase(data.NewMovieRepo(d, logger), logger)

	return NewHTTPServer(&conf.Server{}, auth,
		service.NewMovieService(movieUC, logger),
		service.NewAuthService(auth, sessionUC, logger),
		sessionUC, logger)
}

func (c *testClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(c.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:4321"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)
	return rec
}

func (c *testClient) login() {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/login", map[string]string{"username": "admin", "password": "1234"})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(c.t, cookies, 1)
	c.cookie = cookies[0]
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func newLoggedInClient(t *testing.T) *testClient {
	c := &testClient{t: t, srv: newTestServer(t)}
	c.login()
	return c
}

func TestLogin(t *testing.T) {
	c := &testClient{t: t, srv: newTestServer(t)}

	rec := c.do(http.MethodPost, "/login", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	rec = c.do(http.MethodPost, "/login", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c.login()
	assert.Equal(t, service.DefaultCookieName, c.cookie.Name)
	assert.True(t, c.cookie.HttpOnly)
	assert.Equal(t, 3600, c.cookie.MaxAge)
}

func TestSessionGate(t *testing.T) {
	c := &testClient{t: t, srv: newTestServer(t)}

	for _, path := range []string{"/movies", "/movies/watched", "/movies/notwatched", "/movies/sorted", "/movies/abc"} {
		rec := c.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	rec := c.do(http.MethodPost, "/movies", map[string]interface{}{"title": "Dune"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The gate runs before the body is decoded.
	rec = c.do(http.MethodPost, "/movies", `{"title":`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "CODEC")
	rec = c.do(http.MethodPut, "/movies/abc", `{"year":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "UpdateMovieRequest")

	c.cookie = &http.Cookie{Name: service.DefaultCookieName, Value: "forged"}
	rec = c.do(http.MethodGet, "/movies", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLogout(t *testing.T) {
	c := newLoggedInClient(t)
	old := c.cookie

	rec := c.do(http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)

	c.cookie = old
	rec = c.do(http.MethodGet, "/movies", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateMovie(t *testing.T) {
	c := newLoggedInClient(t)

	rec := c.do(http.MethodPost, "/movies", map[string]interface{}{"year": 2020, "watched": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = c.do(http.MethodPost, "/movies", map[string]interface{}{"title": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = c.do(http.MethodPost, "/movies", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodGet, "/movies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String(), "rejected creates must not persist anything")

	rec = c.do(http.MethodPost, "/movies", map[string]interface{}{"title": "Dune", "year": 2021, "rating": 9, "watched": true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[movieJSON](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, "Dune", created.Title)
	assert.True(t, created.Watched)
	require.NotNil(t, created.Year)
	assert.Equal(t, int32(2021), *created.Year)

	rec = c.do(http.MethodGet, "/movies/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[movieJSON](t, rec))

	rec = c.do(http.MethodGet, "/movies/watched", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.ID)

	rec = c.do(http.MethodGet, "/movies/notwatched", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), created.ID)
}

func TestWatchedCoercion(t *testing.T) {
	c := newLoggedInClient(t)

	tests := []struct {
		name    string
		watched interface{}
		want    bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"string true", "true", true},
		{"string false", "false", false},
		{"omitted", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := map[string]interface{}{"title": "Movie " + tt.name}
			if tt.watched != nil {
				body["watched"] = tt.watched
			}
			rec := c.do(http.MethodPost, "/movies", body)
			require.Equal(t, http.StatusCreated, rec.Code)
			created := decode[movieJSON](t, rec)
			assert.Equal(t, tt.want, created.Watched)

			update := map[string]interface{}{"title": created.Title}
			if tt.watched != nil {
				update["watched"] = tt.watched
			}
			rec = c.do(http.MethodPut, "/movies/"+created.ID, update)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, decode[movieJSON](t, rec).Watched)
		})
	}
}

func TestFilteredViews(t *testing.T) {
	c := newLoggedInClient(t)

	seed := []map[string]interface{}{
		{"title": "Dune", "rating": 9, "watched": true},
		{"title": "Heat", "rating": 8},
		{"title": "Cats"},
		{"title": "Alien", "rating": 9.5, "watched": "true"},
		{"title": "Tenet", "rating": 7, "watched": "false"},
	}
	for _, m := range seed {
		rec := c.do(http.MethodPost, "/movies", m)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := c.do(http.MethodGet, "/movies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]movieJSON](t, rec)
	require.Len(t, all, len(seed))

	rec = c.do(http.MethodGet, "/movies/watched", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	watched := decode[[]movieJSON](t, rec)

	rec = c.do(http.MethodGet, "/movies/notwatched", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notWatched := decode[[]movieJSON](t, rec)

	ids := map[string]int{}
	for _, m := range watched {
		assert.True(t, m.Watched)
		ids[m.ID]++
	}
	for _, m := range notWatched {
		assert.False(t, m.Watched)
		ids[m.ID]++
	}
	assert.Len(t, ids, len(all), "watched and not watched must partition the list")
	for _, m := range all {
		assert.Equal(t, 1, ids[m.ID], "%s appears in exactly one view", m.Title)
	}

	rec = c.do(http.MethodGet, "/movies/sorted", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sorted := decode[[]movieJSON](t, rec)
	require.Len(t, sorted, len(seed))
	assert.Equal(t, "Alien", sorted[0].Title)
	assert.Equal(t, "Cats", sorted[len(sorted)-1].Title, "unrated movies sort last")
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rating == nil {
			continue
		}
		require.NotNil(t, sorted[i-1].Rating)
		assert.GreaterOrEqual(t, *sorted[i-1].Rating, *sorted[i].Rating)
	}
}

func TestUpdateMovie(t *testing.T) {
	c := newLoggedInClient(t)

	rec := c.do(http.MethodPut, "/movies/65f0c0ffee0000000000beef", map[string]interface{}{"title": "Ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = c.do(http.MethodPut, "/movies/not-an-id", map[string]interface{}{"title": "Ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/movies", nil)
	assert.JSONEq(t, `[]`, rec.Body.String(), "updating a missing id must not create a record")

	rec = c.do(http.MethodPost, "/movies", map[string]interface{}{"title": "Heat", "genre": "crime", "year": 1995})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[movieJSON](t, rec)

	rec = c.do(http.MethodPut, "/movies/"+created.ID, map[string]interface{}{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPut, "/movies/"+created.ID, map[string]interface{}{"title": "Heat (1995)", "rating": 8.3, "watched": true})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[movieJSON](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Heat (1995)", updated.Title)
	assert.True(t, updated.Watched)
	require.NotNil(t, updated.Genre)
	assert.Equal(t, "crime", *updated.Genre)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 8.3, *updated.Rating)
}

func TestDeleteMovie(t *testing.T) {
	c := newLoggedInClient(t)

	rec := c.do(http.MethodDelete, "/movies/65f0c0ffee0000000000beef", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodPost, "/movies", map[string]interface{}{"title": "Cats"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[movieJSON](t, rec)

	rec = c.do(http.MethodDelete, "/movies/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[movieJSON](t, rec))

	rec = c.do(http.MethodGet, "/movies/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMovie_Unknown(t *testing.T) {
	c := newLoggedInClient(t)
	for _, id := range []string{"65f0c0ffee0000000000beef", "definitely-not-an-id"} {
		rec := c.do(http.MethodGet, "/movies/"+id, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
	}
}

func TestLoginThrottling(t *testing.T) {
	c := &testClient{t: t, srv: newTestServerWithAuth(t, &conf.Auth{
		Username: "admin", Password: "1234", LoginRate: 0.001, LoginBurst: 2,
	})}

	creds := map[string]string{"username": "admin", "password": "nope"}
	for i := 0; i < 2; i++ {
		rec := c.do(http.MethodPost, "/login", creds)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := c.do(http.MethodPost, "/login", map[string]string{"username": "admin", "password": "1234"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "only the login operation is throttled")
}

func TestLoginThrottling_MalformedBodies(t *testing.T) {
	c := &testClient{t: t, srv: newTestServerWithAuth(t, &conf.Auth{
		Username: "admin", Password: "1234", LoginRate: 0.001, LoginBurst: 2,
	})}

	for i := 0; i < 2; i++ {
		rec := c.do(http.MethodPost, "/login", `{"username":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
	rec := c.do(http.MethodPost, "/login", `{"username":1}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
