package litclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBuildQuery(t *testing.T) {
	got := BuildQuery("UCA1:4", "", nil)
	want := `("UCA1:4" AND IN_EPMC:Y AND OPEN_ACCESS:Y AND NOT SRC:PPR)`
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}

	since := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	got = BuildQuery("UCA1:4", "SRC:MED", &since)
	want = `("UCA1:4" AND SRC:MED AND IN_EPMC:Y AND OPEN_ACCESS:Y AND NOT SRC:PPR AND (FIRST_PDATE:[2020-01-15 TO today]))`
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestSearchParsesHitsAndCursor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(`<responseWrapper>
  <nextCursorMark>AABB</nextCursorMark>
  <resultList>
    <result><pmcid>PMC1234567</pmcid><citedByCount>3</citedByCount></result>
    <result><pmcid>PMC7654321</pmcid><citedByCount>0</citedByCount></result>
  </resultList>
</responseWrapper>`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	hits, next, err := c.Search(context.Background(), `("UCA1:4")`, "*")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].PMCID != "PMC1234567" || hits[0].CitedBy != 3 {
		t.Errorf("hits[0] = %+v", hits[0])
	}
	if next != "AABB" {
		t.Errorf("next cursor = %q, want AABB", next)
	}
}

func TestSearchStopsAtRepeatedCursor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(`<responseWrapper><nextCursorMark>*</nextCursorMark><resultList></resultList></responseWrapper>`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	hits, next, err := c.Search(context.Background(), `("UCA1:4")`, "*")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
	if next != "" {
		t.Errorf("expected empty next cursor on repeat, got %q", next)
	}
}

func TestFetchFullTextNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	body := c.FetchFullText(context.Background(), "PMC0000000")
	if body != nil {
		t.Errorf("expected nil body on 404, got %q", body)
	}
}
