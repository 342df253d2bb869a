package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgrunert/antwort/internal/llm"
	"github.com/dgrunert/antwort/internal/models"
	"github.com/dgrunert/antwort/internal/workflow"
)

func newTestRouter(s *fakeStore) http.Handler {
	logger := slog.New(slog.DiscardHandler)
	svc := NewService(&fakeRunner{}, s, llm.NewCache(), workflow.TaskQueue, logger)
	return NewRouter(svc, logger)
}

// TestStatusForKind covers the kind-to-status table.
func TestStatusForKind(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusForKind(models.ErrInputBlank))
	assert.Equal(t, http.StatusUnprocessableEntity, statusForKind(models.ErrMissingCredentials))
	assert.Equal(t, http.StatusUnprocessableEntity, statusForKind(models.ErrInputTooLong))
	assert.Equal(t, http.StatusUnauthorized, statusForKind(models.ErrUnauthorized))
	assert.Equal(t, http.StatusForbidden, statusForKind(models.ErrForbidden))
	assert.Equal(t, http.StatusTooManyRequests, statusForKind(models.ErrRateLimited))
	assert.Equal(t, http.StatusGatewayTimeout, statusForKind(models.ErrTimeout))
	assert.Equal(t, http.StatusBadGateway, statusForKind(models.ErrNoConnectivity))
	assert.Equal(t, http.StatusBadGateway, statusForKind(models.ErrTransport))
	assert.Equal(t, http.StatusBadGateway, statusForKind(models.ErrEmptyReply))
	assert.Equal(t, http.StatusInternalServerError, statusForKind(models.ErrUnexpected))
}

// TestSuggestionsEndpoint_MissingKeyReturnsGermanError verifies the HTTP
// surface returns the kind plus the German user message.
func TestSuggestionsEndpoint_MissingKeyReturnsGermanError(t *testing.T) {
	router := newTestRouter(&fakeStore{settings: models.DefaultSettings()})

	req := httptest.NewRequest(http.MethodPost, "/api/suggestions", strings.NewReader(`{"message":"Hallo"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(models.ErrMissingCredentials), body.Kind)
	assert.Equal(t, "API-Key fehlt. Bitte in den Einstellungen konfigurieren.", body.Message)
}

// TestPresetsEndpoint verifies the built-in presets are served.
func TestPresetsEndpoint(t *testing.T) {
	router := newTestRouter(configuredStore())

	req := httptest.NewRequest(http.MethodGet, "/api/presets", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var presets []models.StylePreset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &presets))
	require.Len(t, presets, 3)
	assert.Equal(t, "friendly-standard", presets[0].ID)
}

// TestHistoryEndpoint_EmptyIsJSONArray verifies an empty history serializes
// as [] rather than null.
func TestHistoryEndpoint_EmptyIsJSONArray(t *testing.T) {
	router := newTestRouter(configuredStore())

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

// TestSettingsEndpoint_Roundtrip verifies GET serves what PUT stored.
func TestSettingsEndpoint_Roundtrip(t *testing.T) {
	store := configuredStore()
	router := newTestRouter(store)

	payload := `{"api_key":"sk-new","base_url":"https://openrouter.ai/api/v1","model":"meta-llama/llama-3.3-70b-instruct:free","default_tone":"warm","default_goal":"thank","default_length":"short","default_emoji_level":"off","default_formality":"formal","use_context":false,"auto_detect_style":false}`
	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sk-new", store.settings.APIKey)

	req = httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var settings models.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, models.ToneWarm, settings.DefaultTone)
	assert.False(t, settings.UseContext)
}

// TestSettingsEndpoint_NeverEchoesAPIKey verifies neither GET nor PUT leaks
// the stored credential; responses carry only a set/unset flag.
func TestSettingsEndpoint_NeverEchoesAPIKey(t *testing.T) {
	router := newTestRouter(configuredStore())

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sk-test")
	assert.NotContains(t, rec.Body.String(), `"api_key"`)

	var body struct {
		APIKeySet bool `json:"api_key_set"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.APIKeySet)

	payload := `{"api_key":"sk-rotated","base_url":"https://openrouter.ai/api/v1","model":"m"}`
	req = httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(payload))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sk-rotated")
}

// TestSuggestionsEndpoint_MalformedBody verifies malformed JSON is rejected
// with 400 before validation runs.
func TestSuggestionsEndpoint_MalformedBody(t *testing.T) {
	router := newTestRouter(configuredStore())

	req := httptest.NewRequest(http.MethodPost, "/api/suggestions", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
