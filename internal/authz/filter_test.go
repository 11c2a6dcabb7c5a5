package authz

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewhub/internal/models"
	"crewhub/internal/perms"
	"crewhub/internal/repo"
	"crewhub/internal/token"
)

// Собирает маршрут GET /api/v1/users/{userId} за Bearer-фильтром и
// парой прав (READ_GENERAL, READ_SELF).
func newTestRouter(t *testing.T) (*mux.Router, *token.Service, *models.User, *models.User) {
	t.Helper()
	d := newTestDB(t)
	e := NewEngine(repo.NewUserStore(d), repo.NewRoleStore(d))
	ts := token.New([]byte("filter-test-secret"), time.Hour)

	self := seed(t, d, "self@crewhub.local", []string{"READ_SELF"})
	admin := seed(t, d, "admin@crewhub.local", []string{"READ_GENERAL"})

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(Bearer(ts))

	guarded := api.PathPrefix("/users/{userId:[0-9]+}").Subrouter()
	guarded.Use(Require(e, perms.ReadGeneral, perms.ReadSelf))
	guarded.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	return r, ts, self, admin
}

func get(t *testing.T, r *mux.Router, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBearerRejectsMissingAndBrokenTokens(t *testing.T) {
	t.Parallel()
	r, _, self, _ := newTestRouter(t)
	path := fmt.Sprintf("/api/v1/users/%d", self.ID)

	assert.Equal(t, http.StatusUnauthorized, get(t, r, path, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(t, r, path, "garbage").Code)

	expired := token.New([]byte("filter-test-secret"), -time.Minute)
	tok, err := expired.Issue(self.Email, self.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(t, r, path, tok).Code)

	otherKey := token.New([]byte("other-secret"), time.Hour)
	tok, err = otherKey.Issue(self.Email, self.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(t, r, path, tok).Code)
}

func TestRequireStaleTokenForDeletedAccount(t *testing.T) {
	t.Parallel()
	r, ts, self, _ := newTestRouter(t)

	// Подпись верна, но такой учётки уже нет: это 401, а не 404.
	tok, err := ts.Issue("ghost@crewhub.local", self.ID+1000, nil)
	require.NoError(t, err)

	rec := get(t, r, fmt.Sprintf("/api/v1/users/%d", self.ID), tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
}

func TestRequireSelfVersusGeneral(t *testing.T) {
	t.Parallel()
	r, ts, self, admin := newTestRouter(t)

	selfTok, err := ts.Issue(self.Email, self.ID, nil)
	require.NoError(t, err)
	adminTok, err := ts.Issue(admin.Email, admin.ID, nil)
	require.NoError(t, err)

	// READ_SELF: своя учётка доступна, чужая — нет.
	assert.Equal(t, http.StatusOK,
		get(t, r, fmt.Sprintf("/api/v1/users/%d", self.ID), selfTok).Code)
	assert.Equal(t, http.StatusForbidden,
		get(t, r, fmt.Sprintf("/api/v1/users/%d", admin.ID), selfTok).Code)

	// READ_GENERAL видит всех.
	assert.Equal(t, http.StatusOK,
		get(t, r, fmt.Sprintf("/api/v1/users/%d", self.ID), adminTok).Code)
	assert.Equal(t, http.StatusOK,
		get(t, r, fmt.Sprintf("/api/v1/users/%d", admin.ID), adminTok).Code)
}
