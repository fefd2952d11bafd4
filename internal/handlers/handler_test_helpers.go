package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:          uuid.New(),
		Handle:      "tester",
		Email:       "tester@example.com",
		DisplayName: "Tester",
	}
}

// newRequest builds a request with an optional JSON body and an
// optional authenticated user in the context.
func newRequest(t *testing.T, method, target string, body any, user *models.User) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	if user != nil {
		req = req.WithContext(SetUserInContext(req.Context(), user))
	}
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dest); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func assertErrorResponse(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	assertStatus(t, rec, status)

	var resp ErrorResponse
	decodeResponse(t, rec, &resp)
	if resp.Error == "" {
		t.Fatal("expected an error message")
	}
}
