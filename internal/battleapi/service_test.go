package battleapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okonen/lingoclash/internal/battleapi"
	"github.com/okonen/lingoclash/internal/config"
	"github.com/okonen/lingoclash/internal/game/combat"
	"github.com/okonen/lingoclash/internal/game/vocab"
	"github.com/okonen/lingoclash/internal/observability"
)

const eps = 1e-9

func newTestService(t *testing.T) *battleapi.Service {
	t.Helper()
	store, err := combat.NewStore(combat.DefaultTables())
	require.NoError(t, err)

	catalog := vocab.NewCatalog()
	require.NoError(t, catalog.Add(vocab.Item{
		ID: "animals/murcielago", Word: "murciélago", Gloss: "bat",
		Level: 5, Category: vocab.Special, BasePower: 40,
	}))

	cfg := config.HTTPConfig{
		Host: "127.0.0.1", Port: 8080,
		ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second,
		ShutdownTimeout: time.Second,
	}
	return battleapi.NewService(cfg, observability.Nop(), store, catalog)
}

func postResolve(t *testing.T, svc *battleapi.Service, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/resolve", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)
	return rec
}

type resolveBody struct {
	FinalMultiplier float64 `json:"final_multiplier"`
	FinalValue      float64 `json:"final_value"`
	BalanceVersion  string  `json:"balance_version"`
	Breakdown       struct {
		PronunciationBonus  float64 `json:"pronunciation_bonus"`
		ComplexityBonus     float64 `json:"complexity_bonus"`
		ComplexityGated     bool    `json:"complexity_gated"`
		RevealPenalty       float64 `json:"reveal_penalty"`
		PreClampMultiplier  float64 `json:"pre_clamp_multiplier"`
		PostClampMultiplier float64 `json:"post_clamp_multiplier"`
	} `json:"breakdown"`
}

func decodeResolve(t *testing.T, rec *httptest.ResponseRecorder) resolveBody {
	t.Helper()
	var body resolveBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestResolve_AttackInline(t *testing.T) {
	svc := newTestService(t)
	rec := postResolve(t, svc, map[string]any{
		"turn_type":        "attack",
		"rating":           "excellent",
		"accuracy_score":   95,
		"complexity_level": 5,
		"base_value":       40,
		"revealed":         false,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	body := decodeResolve(t, rec)
	assert.InDelta(t, 2.20, body.FinalMultiplier, eps)
	assert.InDelta(t, 88.0, body.FinalValue, eps)
	assert.Equal(t, "builtin", body.BalanceVersion)
	assert.False(t, body.Breakdown.ComplexityGated)
}

func TestResolve_DefenseInline(t *testing.T) {
	svc := newTestService(t)
	rec := postResolve(t, svc, map[string]any{
		"turn_type":        "defense",
		"rating":           "okay",
		"accuracy_score":   75,
		"complexity_level": 3,
		"item_category":    "regular",
		"base_value":       15,
		"revealed":         true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeResolve(t, rec)
	assert.InDelta(t, 1.00, body.FinalMultiplier, eps)
	assert.InDelta(t, 15.0, body.FinalValue, eps)
	assert.InDelta(t, 0.20, body.Breakdown.RevealPenalty, eps)
}

func TestResolve_AttackByItemID(t *testing.T) {
	svc := newTestService(t)
	rec := postResolve(t, svc, map[string]any{
		"turn_type":      "attack",
		"rating":         "good",
		"accuracy_score": 82,
		"item_id":        "animals/murcielago",
		"revealed":       false,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Good (+0.30) + level 5 (+0.60) on the item's base power of 40.
	body := decodeResolve(t, rec)
	assert.InDelta(t, 1.90, body.FinalMultiplier, eps)
	assert.InDelta(t, 76.0, body.FinalValue, eps)
}

func TestResolve_DefenseByItemID_UsesItemCategory(t *testing.T) {
	svc := newTestService(t)
	rec := postResolve(t, svc, map[string]any{
		"turn_type":      "defense",
		"rating":         "excellent",
		"accuracy_score": 100,
		"item_id":        "animals/murcielago",
		"base_value":     15,
		"revealed":       false,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Excellent special (-0.70) + level 5 (-0.20) clamps at the 0.10 floor.
	body := decodeResolve(t, rec)
	assert.InDelta(t, 0.10, body.FinalMultiplier, eps)
	assert.InDelta(t, 1.5, body.FinalValue, eps)
}

func TestResolve_DefenseByItemID_RequiresBaseValue(t *testing.T) {
	svc := newTestService(t)
	rec := postResolve(t, svc, map[string]any{
		"turn_type":      "defense",
		"rating":         "excellent",
		"accuracy_score": 100,
		"item_id":        "animals/murcielago",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolve_UnknownItemID(t *testing.T) {
	svc := newTestService(t)
	rec := postResolve(t, svc, map[string]any{
		"turn_type":      "attack",
		"rating":         "good",
		"accuracy_score": 82,
		"item_id":        "animals/gato",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResolve_BadInputs(t *testing.T) {
	svc := newTestService(t)
	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown rating", map[string]any{
			"turn_type": "attack", "rating": "perfect", "accuracy_score": 50,
			"complexity_level": 1, "base_value": 10,
		}},
		{"score above 100", map[string]any{
			"turn_type": "attack", "rating": "good", "accuracy_score": 101,
			"complexity_level": 1, "base_value": 10,
		}},
		{"level out of range", map[string]any{
			"turn_type": "attack", "rating": "good", "accuracy_score": 50,
			"complexity_level": 6, "base_value": 10,
		}},
		{"negative base value", map[string]any{
			"turn_type": "attack", "rating": "good", "accuracy_score": 50,
			"complexity_level": 1, "base_value": -4,
		}},
		{"unknown turn type", map[string]any{
			"turn_type": "parry", "rating": "good", "accuracy_score": 50,
			"complexity_level": 1, "base_value": 10,
		}},
		{"defense without category", map[string]any{
			"turn_type": "defense", "rating": "good", "accuracy_score": 50,
			"complexity_level": 1, "base_value": 10,
		}},
		{"missing complexity level", map[string]any{
			"turn_type": "attack", "rating": "good", "accuracy_score": 50,
			"base_value": 10,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postResolve(t, svc, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestResolve_MalformedJSON(t *testing.T) {
	svc := newTestService(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/resolve", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	svc := newTestService(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "builtin", body["balance_version"])
	assert.EqualValues(t, 1, body["vocabulary_items"])
}
