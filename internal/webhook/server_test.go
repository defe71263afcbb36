package webhook

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulsaklanii-code/formula-status-trigger/internal/processor"
)

// mockSubmitter is a mock implementation of EventSubmitter for testing.
type mockSubmitter struct {
	submitFn func(evt processor.Event) error
	events   []processor.Event
}

func (m *mockSubmitter) Submit(evt processor.Event) error {
	m.events = append(m.events, evt)
	if m.submitFn != nil {
		return m.submitFn(evt)
	}
	return nil
}

func newTestServer(secret string, submitter EventSubmitter) *Server {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(
		Config{Listen: "127.0.0.1:0", SigningSecret: secret},
		NewFilter(defaultFilterConfig()),
		submitter,
		logger,
	)
}

func postWebhook(t *testing.T, s *Server, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("Authorization", signature)
	}
	rec := httptest.NewRecorder()
	s.handleWebhook(rec, req)
	return rec
}

func TestHandleWebhook_ValidDelivery(t *testing.T) {
	secret := "test-secret"
	body := []byte(`{
		"event": {
			"boardId": 456,
			"pulseId": 123,
			"columnId": "formula_1",
			"columnType": "formula",
			"value": "85%",
			"userId": 789
		}
	}`)

	ms := &mockSubmitter{}
	s := newTestServer(secret, ms)

	rec := postWebhook(t, s, body, computeExpectedSignature(body, secret))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "received", resp.Message)

	require.Len(t, ms.events, 1)
	evt := ms.events[0]
	assert.Equal(t, "456", evt.BoardID)
	assert.Equal(t, "123", evt.ItemID)
	assert.Equal(t, "formula_1", evt.ColumnID)
	assert.Equal(t, `"85%"`, string(evt.Value))
	assert.NotEmpty(t, evt.DeliveryID)
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	body := []byte(`{"event": {"boardId": 456, "pulseId": 123}}`)

	ms := &mockSubmitter{
		submitFn: func(evt processor.Event) error {
			t.Fatal("Submit should not be called with invalid signature")
			return nil
		},
	}
	s := newTestServer("test-secret", ms)

	rec := postWebhook(t, s, body, "0000000000000000000000000000000000000000000000000000000000000000")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleWebhook_MissingSignature(t *testing.T) {
	body := []byte(`{"event": {"boardId": 456, "pulseId": 123}}`)
	s := newTestServer("test-secret", &mockSubmitter{})

	rec := postWebhook(t, s, body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleWebhook_NoSecretSkipsVerification(t *testing.T) {
	body := []byte(`{"event": {"boardId": 456, "pulseId": 123, "columnType": "formula", "value": 85}}`)

	ms := &mockSubmitter{}
	s := newTestServer("", ms)

	rec := postWebhook(t, s, body, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, ms.events, 1)
}

func TestHandleWebhook_MalformedPayload(t *testing.T) {
	s := newTestServer("", &mockSubmitter{})

	tests := []struct {
		name string
		body string
	}{
		{"no event", `{"boardId": 456}`},
		{"null event", `{"event": null}`},
		{"not json", `not json at all`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postWebhook(t, s, []byte(tt.body), "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleWebhook_ExtractionFailure(t *testing.T) {
	s := newTestServer("", &mockSubmitter{})

	rec := postWebhook(t, s, []byte(`{"event": {"columnId": "c"}}`), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleWebhook_IgnoredEvent(t *testing.T) {
	body := []byte(`{"event": {"boardId": 456, "pulseId": 123, "columnType": "status"}}`)

	ms := &mockSubmitter{
		submitFn: func(evt processor.Event) error {
			t.Fatal("status-column events must not be processed")
			return nil
		},
	}
	s := newTestServer("", ms)

	rec := postWebhook(t, s, body, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ignored", resp.Message)
}

func TestHandleWebhook_ChallengeEcho(t *testing.T) {
	secret := "test-secret"
	body := []byte(`{"challenge": "xyz-token"}`)

	s := newTestServer(secret, &mockSubmitter{})
	rec := postWebhook(t, s, body, computeExpectedSignature(body, secret))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "xyz-token", resp["challenge"])
}

func TestHandleWebhook_SubmitErrorStillAcknowledged(t *testing.T) {
	body := []byte(`{"event": {"boardId": 456, "pulseId": 123, "columnType": "formula", "value": 85}}`)

	ms := &mockSubmitter{
		submitFn: func(evt processor.Event) error {
			return assert.AnError
		},
	}
	s := newTestServer("", ms)

	rec := postWebhook(t, s, body, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "received", resp.Message)
}

func TestHandleWebhook_PayloadTooLarge(t *testing.T) {
	s := newTestServer("", &mockSubmitter{})
	s.config.MaxBodySize = 64

	big := bytes.Repeat([]byte("a"), 128)
	rec := postWebhook(t, s, big, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer("", &mockSubmitter{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)

	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)
}

func TestRoutes_LandingPage(t *testing.T) {
	s := newTestServer("", &mockSubmitter{})
	router := s.setupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Formula Status Trigger")
}
