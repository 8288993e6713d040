package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := New("test-key")
	c.baseURL = srv.URL
	return c, srv
}

func TestGetAddress_PrefersStreetLevel(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"formatted_address": "Palermo, Buenos Aires", "types": ["political", "sublocality"]},
				{"formatted_address": "Av. Santa Fe 3253, Buenos Aires", "types": ["street_address"]}
			]
		}`))
	})
	defer srv.Close()

	got, err := c.GetAddress(context.Background(), -34.5880, -58.4106)
	if err != nil {
		t.Fatalf("GetAddress: %v", err)
	}
	if got != "Av. Santa Fe 3253, Buenos Aires" {
		t.Fatalf("want street-level address, got %q", got)
	}
}

func TestGetAddress_FirstResultWhenNoStreetLevel(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "OK",
			"results": [{"formatted_address": "Buenos Aires, Argentina", "types": ["locality"]}]
		}`))
	})
	defer srv.Close()

	got, err := c.GetAddress(context.Background(), -34.6037, -58.3816)
	if err != nil {
		t.Fatalf("GetAddress: %v", err)
	}
	if got != "Buenos Aires, Argentina" {
		t.Fatalf("got %q", got)
	}
}

func TestGetAddress_EmptyResults(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})
	defer srv.Close()

	_, err := c.GetAddress(context.Background(), 0, 0)
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("want ErrNoResults, got %v", err)
	}
}

func TestGetAddress_ServerError(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	if _, err := c.GetAddress(context.Background(), 1, 1); err == nil {
		t.Fatal("want error on 500 response")
	}
}
