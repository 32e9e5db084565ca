package reviews

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSubmit_Success(t *testing.T) {
	var gotPath string
	var gotBody Input
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Write([]byte(`{
			"success": true,
			"review": {"user": "Ada", "rating": 5, "comment": "Warm and comfy"},
			"newAverageRating": 4.4
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil)
	result, err := client.Submit(context.Background(), 7, Input{User: "Ada", Rating: 5, Comment: "Warm and comfy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/products/7/reviews" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotBody.User != "Ada" || gotBody.Rating != 5 {
		t.Fatalf("unexpected body: %+v", gotBody)
	}
	if result.Review.User != "Ada" || result.Review.Rating != 5 {
		t.Fatalf("unexpected review: %+v", result.Review)
	}
	if result.NewAverageRating != 4.4 {
		t.Fatalf("expected average 4.4, got %v", result.NewAverageRating)
	}
}

func TestSubmit_TrimsWhitespace(t *testing.T) {
	var gotBody Input
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"success": true, "review": {"user": "Ada", "rating": 4, "comment": "ok"}, "newAverageRating": 4.0}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil)
	if _, err := client.Submit(context.Background(), 7, Input{User: "  Ada  ", Rating: 4, Comment: " ok "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody.User != "Ada" || gotBody.Comment != "ok" {
		t.Fatalf("expected trimmed fields, got %+v", gotBody)
	}
}

func TestSubmit_ValidationBeforeNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil)
	cases := []struct {
		name string
		in   Input
		want string
	}{
		{"blank user", Input{User: " ", Rating: 4, Comment: "ok"}, "name required"},
		{"rating low", Input{User: "Ada", Rating: 0, Comment: "ok"}, "rating must be between 1 and 5"},
		{"rating high", Input{User: "Ada", Rating: 6, Comment: "ok"}, "rating must be between 1 and 5"},
		{"blank comment", Input{User: "Ada", Rating: 4, Comment: "  "}, "comment required"},
	}
	for _, tc := range cases {
		_, err := client.Submit(context.Background(), 7, tc.in)
		if err == nil || err.Error() != tc.want {
			t.Fatalf("%s: expected %q, got %v", tc.name, tc.want, err)
		}
	}
	if requests != 0 {
		t.Fatalf("validation failures must not reach the server, saw %d requests", requests)
	}
}

func TestSubmit_ProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success": false, "message": "Product not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil)
	_, err := client.Submit(context.Background(), 999, Input{User: "Ada", Rating: 4, Comment: "ok"})
	if err == nil || !strings.Contains(err.Error(), "Product not found") {
		t.Fatalf("expected server message, got %v", err)
	}
}

func TestSubmit_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`garbage`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil)
	if _, err := client.Submit(context.Background(), 7, Input{User: "Ada", Rating: 4, Comment: "ok"}); err == nil {
		t.Fatalf("expected decode error")
	}
}
