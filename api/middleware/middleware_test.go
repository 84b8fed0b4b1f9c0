package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/luxe-storefront/pkg/config"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	issued   int
	issueErr error
}

func (f *fakeTokens) Issue() (string, string, error) {
	if f.issueErr != nil {
		return "", "", f.issueErr
	}
	f.issued++
	return "fresh-visitor", "token-for-fresh-visitor", nil
}

func (f *fakeTokens) Parse(token string) (string, error) {
	if token == "good-token" {
		return "known-visitor", nil
	}
	return "", errors.New("token invalid")
}

func visitorConfig() config.VisitorConfig {
	return config.VisitorConfig{CookieName: "luxe_visitor", TTL: time.Hour}
}

func echoVisitor() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(VisitorIDFromContext(r.Context())))
	})
}

func TestVisitorReusesValidCookie(t *testing.T) {
	tokens := &fakeTokens{}
	h := Visitor(tokens, visitorConfig(), logger.Nop())(echoVisitor())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "luxe_visitor", Value: "good-token"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "known-visitor", w.Body.String())
	assert.Zero(t, tokens.issued)
	assert.Empty(t, w.Result().Cookies())
}

func TestVisitorIssuesCookieWhenMissingOrInvalid(t *testing.T) {
	for name, cookie := range map[string]*http.Cookie{
		"missing": nil,
		"forged":  {Name: "luxe_visitor", Value: "forged"},
	} {
		t.Run(name, func(t *testing.T) {
			tokens := &fakeTokens{}
			h := Visitor(tokens, visitorConfig(), logger.Nop())(echoVisitor())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if cookie != nil {
				req.AddCookie(cookie)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, "fresh-visitor", w.Body.String())
			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, "luxe_visitor", cookies[0].Name)
			assert.Equal(t, "token-for-fresh-visitor", cookies[0].Value)
			assert.True(t, cookies[0].HttpOnly)
			assert.Equal(t, 3600, cookies[0].MaxAge)
		})
	}
}

func TestVisitorIssueFailure(t *testing.T) {
	tokens := &fakeTokens{issueErr: errors.New("entropy gone")}
	h := Visitor(tokens, visitorConfig(), logger.Nop())(echoVisitor())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestIDPropagates(t *testing.T) {
	var seen string
	h := RequestID(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "  abc-123 ")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRecovererWritesEnvelopeForAPI(t *testing.T) {
	h := Recoverer(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestLoggingRecordsStatus(t *testing.T) {
	var rec *statusRecorder
	h := Logging(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec = w.(*statusRecorder)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, rec)
	assert.Equal(t, http.StatusTeapot, rec.status)
	assert.Equal(t, 15, rec.bytes)
}
