package validator

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitback-api/internal/interface/api/rest/dto/logging"
)

func TestValidatePage(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 1, false},
		{"3", 3, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			got, err := ValidatePage(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChunkPosition(t *testing.T) {
	i, n, err := ParseChunkPosition("2", " 5 ")
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	assert.Equal(t, 5, n)

	for _, c := range [][2]string{{"x", "5"}, {"1", "y"}, {"5", "5"}, {"-1", "5"}, {"0", "0"}} {
		_, _, err := ParseChunkPosition(c[0], c[1])
		assert.ErrorIs(t, err, ErrInvalidChunkIndex, c)
	}
}

func TestValidateLogRequest(t *testing.T) {
	assert.True(t, ValidateLogRequest(logging.Request{Level: "error", Message: "x"}))
	assert.False(t, ValidateLogRequest(logging.Request{Level: " ", Message: "x"}))
	assert.False(t, ValidateLogRequest(logging.Request{Level: "error"}))
}

func TestMissingFields(t *testing.T) {
	got := MissingFields(map[string]string{"a": "1", "b": "", "c": "  "})
	sort.Strings(got)
	assert.Equal(t, []string{"b", "c"}, got)
	assert.Nil(t, MissingFields(map[string]string{"a": "1"}))
}

func TestIsUUID(t *testing.T) {
	ok, _ := IsUUID("not-a-uuid")
	assert.False(t, ok)
	ok, id := IsUUID("2b8f9a9e-8a53-4b3e-9d1d-3f0b1c2d4e5f")
	assert.True(t, ok)
	assert.Equal(t, "2b8f9a9e-8a53-4b3e-9d1d-3f0b1c2d4e5f", id.String())
}
