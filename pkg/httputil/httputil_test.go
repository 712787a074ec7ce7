package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/observability"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   errors.Code
		wantMsg    string
	}{
		{"lock", errors.New(errors.ErrCodeInvalidLock, "unknown person: %s", "ADAMS"), 400, errors.ErrCodeInvalidLock, "unknown person: ADAMS"},
		{"missing workspace", errors.New(errors.ErrCodeWorkspaceNotFound, "no workspace"), 404, errors.ErrCodeWorkspaceNotFound, "no workspace"},
		{"version", errors.New(errors.ErrCodeVersionMismatch, "old state"), 409, errors.ErrCodeVersionMismatch, "old state"},
		{"plain", fmt.Errorf("open /etc/secret: denied"), 500, errors.ErrCodeInternal, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if got := WriteError(rec, tt.err); got != tt.wantStatus {
				t.Errorf("WriteError() = %d, want %d", got, tt.wantStatus)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error.Code != tt.wantCode || body.Error.Message != tt.wantMsg {
				t.Errorf("body = %+v, want %s %q", body.Error, tt.wantCode, tt.wantMsg)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name     string
		body     string
		wantCode errors.Code
	}{
		{"valid", `{"name":"Alpha"}`, ""},
		{"unknown field", `{"name":"Alpha","extra":1}`, errors.ErrCodeInvalidFormat},
		{"malformed", `{"name":`, errors.ErrCodeInvalidFormat},
		{"trailing", `{"name":"Alpha"} {}`, errors.ErrCodeInvalidFormat},
		{"too large", `{"name":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(httptest.NewRecorder(), req, &p)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("DecodeJSON() error: %v", err)
				}
				if p.Name != "Alpha" {
					t.Errorf("Name = %q, want Alpha", p.Name)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("DecodeJSON() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("generated ID %q is not a UUID", seen)
	}
	if rec.Header().Get(HeaderRequestID) != seen {
		t.Errorf("header = %q, want %q", rec.Header().Get(HeaderRequestID), seen)
	}

	want := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, want)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != want {
		t.Errorf("incoming ID not reused: got %q, want %q", seen, want)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "not\na-uuid")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == "not\na-uuid" {
		t.Error("invalid incoming ID should be replaced")
	}
}

func TestRequestIDFromEmpty(t *testing.T) {
	if id := RequestIDFrom(context.Background()); id != "" {
		t.Errorf("RequestIDFrom() = %q, want empty", id)
	}
}

type recordedRequest struct {
	method, route string
	status        int
}

type httpRecorder struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (h *httpRecorder) OnRequest(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reqs = append(h.reqs, recordedRequest{method, route, status})
}

func TestObserve(t *testing.T) {
	rec := &httpRecorder{}
	observability.SetHTTPHooks(rec)
	defer observability.Reset()

	r := chi.NewRouter()
	r.Use(Observe)
	r.Get("/v1/workspaces/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/v1/workspaces/abc", "/healthz"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	want := []recordedRequest{
		{http.MethodGet, "/v1/workspaces/{id}", http.StatusNotFound},
		{http.MethodGet, "/healthz", http.StatusOK},
	}
	if len(rec.reqs) != len(want) {
		t.Fatalf("recorded %d requests, want %d", len(rec.reqs), len(want))
	}
	for i := range want {
		if rec.reqs[i] != want[i] {
			t.Errorf("request %d = %+v, want %+v", i, rec.reqs[i], want[i])
		}
	}
}
