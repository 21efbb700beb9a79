package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "date only", value: "2024-06-01", want: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", value: "2024-06-01T10:30:00+02:00", want: time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)},
		{name: "spaces", value: " 2024-06-01 ", want: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "01.06.2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusConflict, Kind: KindConflict, Message: "занято"}, body)
}

func TestDecodeJSON_UnknownField(t *testing.T) {
	var dst struct {
		CarID string `json:"carId"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"carId":"c1"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "c1", dst.CarID)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"carId":"c1","extra":1}`))
	assert.Error(t, DecodeJSON(req, &dst))
}
