package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/ereceipt-backend/internal/auth"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := ulid.ParseStrict(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	upstream := ulid.Make().String()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, upstream)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, upstream, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-ulid")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "not-a-ulid", seen)
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body["code"])
}

func TestStatusRecorderKeepsFirstStatus(t *testing.T) {
	rec := record(httptest.NewRecorder())
	_, _ = rec.Write([]byte("x"))
	rec.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusOK, rec.status)
	assert.Same(t, rec, record(rec))
}

func TestViewSession(t *testing.T) {
	sm := auth.NewSessionManager("secret", "test", time.Minute)
	tok, _, err := sm.Issue("r1")
	require.NoError(t, err)

	var rid string
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid, ok = SessionReceipt(r.Context())
	})

	cases := []struct {
		name     string
		required bool
		header   string
		status   int
		wantRID  string
	}{
		{"optional without header", false, "", http.StatusOK, ""},
		{"required without header", true, "", http.StatusUnauthorized, ""},
		{"valid bearer", true, "Bearer " + tok, http.StatusOK, "r1"},
		{"lowercase scheme", false, "bearer " + tok, http.StatusOK, "r1"},
		{"garbage token", false, "Bearer nope", http.StatusUnauthorized, ""},
		{"wrong scheme", false, "Basic abc", http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rid, ok = "", false
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			ViewSession(sm, tc.required)(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.wantRID, rid)
			assert.Equal(t, tc.wantRID != "", ok)
		})
	}
}
