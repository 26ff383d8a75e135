package http

import (
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/dto"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain"
)

func respond(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return respondError(c, err) })
	resp, testErr := app.Test(httptest.NewRequest(nethttp.MethodGet, "/", nil), -1)
	require.NoError(t, testErr)
	body, _ := io.ReadAll(resp.Body)
	var decoded dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &decoded))
	return resp.StatusCode, decoded
}

// A gateway failure must carry the verbatim upstream payload in the response
// body, not just the op and status baked into the message.
func TestRespondError_UpstreamPayloadAttached(t *testing.T) {
	raw := `{"validationResponse":{"statusCode":"01","status":"Invalid","error":"Seller not registered for sales tax"}}`

	status, body := respond(t, &domain.UpstreamError{Op: "post", Status: 401, RawBody: raw})

	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "FBR_GATEWAY", body.Code)
	assert.JSONEq(t, raw, body.Upstream)
}

func TestRespondError_UpstreamTransportFailureHasNoBody(t *testing.T) {
	status, body := respond(t, &domain.UpstreamError{Op: "validate", Err: fmt.Errorf("dial tcp: connection refused")})

	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "FBR_GATEWAY", body.Code)
	assert.Empty(t, body.Upstream)
}

// Wrapped sentinels still map through errors.Is.
func TestRespondError_WrappedSentinels(t *testing.T) {
	status, body := respond(t, fmt.Errorf("signin: %w", domain.ErrInvalidCredentials))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.Code)

	status, body = respond(t, fmt.Errorf("load: %w", domain.ErrRoleNotFound))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)

	status, body = respond(t, fmt.Errorf("boom"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
}
