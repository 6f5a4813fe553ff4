package scheduler

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/RNAcentral/rnacentral-references/internal/model"
	"github.com/RNAcentral/rnacentral-references/internal/notify"
)

func newTestScheduler() *Scheduler {
	return New(nil, notify.New(nil), "@every 3500ms")
}

func splitHostPort(t *testing.T, rawURL string) (string, string) {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("split host port: %v", err)
	}
	return host, port
}

func TestDispatchSendsJobID(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	host, port := splitHostPort(t, srv.URL)
	s := newTestScheduler()
	s.dispatch(context.Background(), model.Consumer{IP: host, Port: port}, model.Job{JobID: "uca1:4"})

	if !strings.Contains(gotBody, `"job_id":"uca1:4"`) {
		t.Errorf("dispatch body = %q, want job_id field", gotBody)
	}
}

func TestDispatchSwallowsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	host, port := splitHostPort(t, srv.URL)
	s := newTestScheduler()
	// Must not panic; the job simply stays pending for the next tick.
	s.dispatch(context.Background(), model.Consumer{IP: host, Port: port}, model.Job{JobID: "uca1:4"})
}

func TestDispatchSwallowsConnectionError(t *testing.T) {
	s := newTestScheduler()
	s.dispatch(context.Background(), model.Consumer{IP: "127.0.0.1", Port: "1"}, model.Job{JobID: "uca1:4"})
}
