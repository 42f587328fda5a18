package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, id string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestParseTournamentID(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		want    int64
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"not a number", "abc", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTournamentID(testContext(t, tt.param))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRevealTime(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	windowEnd := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		raw     string
		want    *time.Time
		wantErr bool
	}{
		{"empty is allowed", "", nil, false},
		{"not RFC3339", "tomorrow", nil, true},
		{"one minute from now is inside the window", now.Add(time.Minute).Format(time.RFC3339), nil, true},
		{"one second before window end", windowEnd.Add(-time.Second).Format(time.RFC3339), nil, true},
		{"exactly window end", windowEnd.Format(time.RFC3339), &windowEnd, false},
		{"after window end", windowEnd.Add(time.Hour).Format(time.RFC3339), ptrTime(windowEnd.Add(time.Hour)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRevealTime(tt.raw, "24h", now)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got))
		})
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func TestValidDuration(t *testing.T) {
	for _, duration := range []string{"1m", "15m", "1h", "4h", "24h"} {
		assert.True(t, validDuration(duration), duration)
	}
	for _, duration := range []string{"", "2h", "30s", "1d"} {
		assert.False(t, validDuration(duration), duration)
	}
}
