package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graveringshuset/backend/internal/domain/payment"
	"github.com/graveringshuset/backend/internal/domain/shipping"
)

func TestSystemHandler_Health(t *testing.T) {
	engine := newTestEngine(t, payment.Config{}, shipping.Config{})

	w := doRequest(engine, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &health))
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.GoVersion)
	assert.NotEmpty(t, health.Uptime)
	assert.NotEmpty(t, health.Timestamp)
}
