package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshita-as02/wanderwise/internal/api/models"
)

func TestTimestamp_JSON(t *testing.T) {
	amsterdam := time.FixedZone("CEST", 2*60*60)
	ts := models.Timestamp(time.Date(2026, 5, 1, 14, 30, 15, 999, amsterdam))

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-05-01T12:30:15Z"`, string(data))

	var back models.Timestamp
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Time().Equal(time.Date(2026, 5, 1, 12, 30, 15, 0, time.UTC)))
}

func TestTimestamp_UnmarshalInvalid(t *testing.T) {
	for _, raw := range []string{`"yesterday"`, `42`, `"`} {
		var ts models.Timestamp
		assert.Error(t, json.Unmarshal([]byte(raw), &ts), raw)
	}

	var ts models.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.Time().IsZero())
}

func TestHealthStatus_Worse(t *testing.T) {
	ok, degraded, fail := models.HealthStatusOK, models.HealthStatusDegraded, models.HealthStatusFail

	assert.Equal(t, degraded, ok.Worse(degraded))
	assert.Equal(t, degraded, degraded.Worse(ok))
	assert.Equal(t, fail, degraded.Worse(fail))
	assert.Equal(t, fail, fail.Worse(ok))
	assert.Equal(t, ok, ok.Worse(ok))
}
