package submitapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSubmitJobRejectsEmptyID(t *testing.T) {
	a := New(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/submit-job", strings.NewReader(`{"id":""}`))
	rw := httptest.NewRecorder()
	a.Handler().ServeHTTP(rw, req)

	if rw.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rw.Code)
	}
	if !strings.Contains(rw.Body.String(), "Error") {
		t.Errorf("body = %q, want an Error field", rw.Body.String())
	}
}

func TestSubmitJobRejectsMalformedBody(t *testing.T) {
	a := New(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/submit-job", strings.NewReader(`not json`))
	rw := httptest.NewRecorder()
	a.Handler().ServeHTTP(rw, req)

	if rw.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rw.Code)
	}
}

func TestSubmitJobRejectsNonBooleanRescan(t *testing.T) {
	a := New(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/submit-job", strings.NewReader(`{"id":"foo","rescan":"yes"}`))
	rw := httptest.NewRecorder()
	a.Handler().ServeHTTP(rw, req)

	if rw.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for non-boolean rescan", rw.Code)
	}
}

func TestMultipleJobsRejectsEmptyList(t *testing.T) {
	a := New(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/multiple-jobs", strings.NewReader(`{"job_id":[]}`))
	rw := httptest.NewRecorder()
	a.Handler().ServeHTTP(rw, req)

	if rw.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rw.Code)
	}
}

func TestMultipleJobsRejectsEmptyElement(t *testing.T) {
	a := New(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/multiple-jobs", strings.NewReader(`{"job_id":["foo",""]}`))
	rw := httptest.NewRecorder()
	a.Handler().ServeHTTP(rw, req)

	if rw.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rw.Code)
	}
}
