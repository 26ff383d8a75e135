package fbr_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/infrastructure/fbr"
)

// ──────────────────────────────────────────────────────────────────────────────
// Request shape
// ──────────────────────────────────────────────────────────────────────────────

func TestClientPostInvoice_SendsBearerTokenAndJSONBody(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"invoiceNumber":"1234567DI0001","dated":"2026-08-01 10:00:00","validationResponse":{"statusCode":"00","status":"Valid"}}`))
	}))
	defer srv.Close()

	client := fbr.NewClient(srv.URL, "sandbox-token", 5*time.Second)

	payload := map[string]string{"invoiceRefNo": "INV-001"}
	verdict, err := client.PostInvoice(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, "/di_data/v1/di/postinvoicedata_sb", gotPath)
	assert.Equal(t, "Bearer sandbox-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"invoiceRefNo":"INV-001"}`, string(gotBody))

	assert.Equal(t, "1234567DI0001", verdict.InvoiceNumber)
	assert.Equal(t, "2026-08-01 10:00:00", verdict.Dated)
	require.NotNil(t, verdict.Validation)
	assert.Equal(t, "Valid", verdict.Validation.Status)
}

func TestClientValidateInvoice_HitsValidateEndpoint(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"validationResponse":{"statusCode":"00","status":"Valid"}}`))
	}))
	defer srv.Close()

	client := fbr.NewClient(srv.URL, "sandbox-token", 5*time.Second)

	_, err := client.ValidateInvoice(context.Background(), map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "/di_data/v1/di/validateinvoicedata_sb", gotPath)
}

// Raw must carry the byte-exact gateway payload, fields the struct does not
// model included.
func TestClient_RawPreservesUnmodeledFields(t *testing.T) {
	body := `{"invoiceNumber":"N1","dated":"d","validationResponse":{"status":"Valid"},"transmissionId":"tx-9"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	client := fbr.NewClient(srv.URL, "t", 5*time.Second)

	verdict, err := client.PostInvoice(context.Background(), map[string]string{})
	require.NoError(t, err)

	assert.JSONEq(t, body, string(verdict.Raw))

	var extra map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(verdict.Raw, &extra))
	assert.Contains(t, extra, "transmissionId")
}

// ──────────────────────────────────────────────────────────────────────────────
// Failure modes — every one is an UpstreamError, never a retry
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_Non2xxBecomesUpstreamError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer srv.Close()

	client := fbr.NewClient(srv.URL, "expired", 5*time.Second)

	_, err := client.PostInvoice(context.Background(), map[string]string{})

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.Status)
	assert.Contains(t, upstream.RawBody, "invalid token")
	assert.Equal(t, 1, calls, "no retries")
}

func TestClient_NetworkErrorBecomesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := fbr.NewClient(srv.URL, "t", time.Second)

	_, err := client.PostInvoice(context.Background(), map[string]string{})

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Error(t, upstream.Err)
}

func TestClient_MalformedJSONBecomesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway maintenance</html>`))
	}))
	defer srv.Close()

	client := fbr.NewClient(srv.URL, "t", 5*time.Second)

	_, err := client.PostInvoice(context.Background(), map[string]string{})

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Contains(t, upstream.RawBody, "maintenance")
}

func TestClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts watching the connection;
		// otherwise it never notices the client's cancellation and this
		// handler (and srv.Close) would block forever.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := fbr.NewClient(srv.URL, "t", 30*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.PostInvoice(ctx, map[string]string{})
	require.Error(t, err)

	var upstream *domain.UpstreamError
	assert.ErrorAs(t, err, &upstream)
}
