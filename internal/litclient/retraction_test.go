package litclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckRetractionsParsesRetracted(t *testing.T) {
	var received statusUpdateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"articlesWithStatusUpdate":[
			{"extId":"PMC1111111","statusUpdates":["RETRACTED"]},
			{"extId":"PMC2222222","statusUpdates":["CORRECTED"]}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	retracted, err := c.CheckRetractions(context.Background(), []string{"PMC1111111", "PMC2222222"})
	if err != nil {
		t.Fatalf("CheckRetractions returned error: %v", err)
	}
	if len(retracted) != 1 || retracted[0] != "PMC1111111" {
		t.Errorf("retracted = %v, want [PMC1111111]", retracted)
	}
	if len(received.IDs) != 2 || received.IDs[0].Src != "PMC" || received.IDs[0].ExtID != "PMC1111111" {
		t.Errorf("request body = %+v", received)
	}
}

func TestCheckRetractionsEmptyInput(t *testing.T) {
	c := New("http://example.invalid")
	retracted, err := c.CheckRetractions(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retracted != nil {
		t.Errorf("expected nil, got %v", retracted)
	}
}

func TestCheckRetractionsSwallowsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	retracted, err := c.CheckRetractions(context.Background(), []string{"PMC1111111"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retracted != nil {
		t.Errorf("expected nil on non-2xx, got %v", retracted)
	}
}
