package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "empty uses default", raw: "", want: 100},
		{name: "valid value", raw: "50", want: 50},
		{name: "capped at max", raw: "100000", want: 500},
		{name: "non-numeric rejected", raw: "invalid", wantErr: true},
		{name: "zero rejected", raw: "0", wantErr: true},
		{name: "negative rejected", raw: "-5", wantErr: true},
		{name: "float rejected", raw: "10.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLimit(tt.raw, 100, 500)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidLimit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSyncTimestamp(t *testing.T) {
	// Пустое значение — первая синхронизация
	ts, err := ParseSyncTimestamp("")
	require.NoError(t, err)
	assert.True(t, ts.IsZero())

	// Валидный RFC3339
	ts, err = ParseSyncTimestamp("2026-02-01T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2026, ts.Year())

	// Дробные секунды курсора сохраняются без усечения
	ts, err = ParseSyncTimestamp("2026-02-01T12:00:00.123456789Z")
	require.NoError(t, err)
	assert.Equal(t, 123456789, ts.Nanosecond())

	// Мусор отклоняется
	_, err = ParseSyncTimestamp("not-a-timestamp")
	require.ErrorIs(t, err, ErrInvalidTimestamp)

	// Unix-число без формата тоже отклоняется
	_, err = ParseSyncTimestamp("1700000000")
	require.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("field.agent-01"))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("has space"))
}
