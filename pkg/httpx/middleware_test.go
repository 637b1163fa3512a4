package httpx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hypolab/workspace/pkg/httpx"
	"github.com/hypolab/workspace/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	claims jwtx.Claims
	err    error
}

func (s stubVerifier) Verify(string) (jwtx.Claims, error) { return s.claims, s.err }

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), tag("a"), tag("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestAuthn(t *testing.T) {
	good := jwtx.Claims{Email: "Alice@Example.com", Name: "Alice", EmailVerified: true}
	good.Subject = "user-1"

	var got httpx.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IdentityFromContext(r.Context())
		require.True(t, ok)
		got = id
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.Authn(stubVerifier{claims: good})(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), "Bearer "))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()
		httpx.Authn(stubVerifier{claims: good})(next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("verification failure", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rec := httptest.NewRecorder()
		httpx.Authn(stubVerifier{err: errors.New("bad sig")})(next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("identity in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer abc")
		rec := httptest.NewRecorder()
		httpx.Authn(stubVerifier{claims: good})(next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, httpx.Identity{
			Subject:       "user-1",
			Email:         "alice@example.com",
			Name:          "Alice",
			EmailVerified: true,
		}, got)
	})
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Email string `json:"email"`
	}

	decode := func(s string) (body, error) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(s))
		err := httpx.DecodeJSON(httptest.NewRecorder(), req, &b)
		return b, err
	}

	b, err := decode(`{"email":"a@b.c"}`)
	require.NoError(t, err)
	require.Equal(t, "a@b.c", b.Email)

	_, err = decode(`{"email":"a@b.c","role":"admin"}`)
	require.Error(t, err)

	_, err = decode(`{"email":"a@b.c"}{}`)
	require.Error(t, err)

	_, err = decode(`not json`)
	require.Error(t, err)
}
