package walkapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

func TestSaveLocation_RoundTrip(t *testing.T) {
	walkID := uuid.MustNew()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if want := "/walks/" + walkID.String() + "/locations"; r.URL.Path != want {
			t.Errorf("path = %s, want %s", r.URL.Path, want)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("auth header = %q", got)
		}

		var sample models.LocationSample
		if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if sample.Latitude != -34.6037 {
			t.Errorf("latitude = %f", sample.Latitude)
		}

		json.NewEncoder(w).Encode(models.SaveLocationResult{
			SavedCount: 3,
			Locations:  []models.RoutePoint{{Lat: "-34.6037", Lng: "-58.3816"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	result, err := c.SaveLocation(context.Background(), models.LocationSample{
		WalkID: walkID, Latitude: -34.6037, Longitude: -58.3816,
	})
	if err != nil {
		t.Fatalf("SaveLocation: %v", err)
	}
	if result.SavedCount != 3 || len(result.Locations) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestGetMessages_Envelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"messages": [{"text": "hola"}, {"text": "guau"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	msgs, err := c.GetMessages(context.Background(), uuid.MustNew())
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Text != "hola" {
		t.Fatalf("unexpected transcript: %+v", msgs)
	}
}

func TestSendMessage_Envelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg models.NewOutgoingMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message": {"text": "` + msg.Text + `", "sender": "owner"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	stored, err := c.SendMessage(context.Background(), models.NewOutgoingMessage{
		WalkID: uuid.MustNew(), Sender: types.SenderOwner, Text: "ya casi llegamos",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if stored.Text != "ya casi llegamos" || stored.Sender != types.SenderOwner {
		t.Fatalf("unexpected stored message: %+v", stored)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, types.ErrWalkNotFound},
		{http.StatusForbidden, types.ErrChatUnavailable},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
		}))

		c := New(srv.URL, "")
		_, err := c.Get(context.Background(), uuid.MustNew())
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: got %v, want %v", tt.status, err, tt.want)
		}
		srv.Close()
	}
}

// The server identifies the reader from the bearer token; the request must
// not carry a body of its own.
func TestMarkMessagesRead_SendsNoBody(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"marked": 2}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if err := c.MarkMessagesRead(context.Background(), uuid.MustNew(), uuid.MustNew()); err != nil {
		t.Fatalf("MarkMessagesRead: %v", err)
	}
	if len(gotBody) != 0 {
		t.Fatalf("request body = %q, want empty", gotBody)
	}
}
