package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/cashflow/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*mux.Router, user.User) {
	users := user.NewUserService(user.NewStubUserRepository())
	jane, err := users.CreateUser(context.Background(), user.User{Username: "jane", DisplayName: "Jane"})
	require.NoError(t, err)

	r := mux.NewRouter()
	SetupMiddleware(r, &Dependencies{UserService: users})
	r.HandleFunc("/whoami", func(w http.ResponseWriter, req *http.Request) {
		current, err := user.CurrentUser(req.Context())
		if err != nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(current.Username))
	})
	return r, jane
}

func TestUserMiddleware(t *testing.T) {
	t.Run("should put the user on the context", func(t *testing.T) {
		// given
		r, jane := setupRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-User-Id", jane.Uid)
		w := httptest.NewRecorder()

		// when
		r.ServeHTTP(w, req)

		// then
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "jane", w.Body.String())
	})

	t.Run("should refuse unknown users", func(t *testing.T) {
		r, _ := setupRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-User-Id", "ghost")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("should pass anonymous requests through", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
