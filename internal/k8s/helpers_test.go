package k8s

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatAge(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{-time.Second, "0s"},
		{45 * time.Second, "45s"},
		{5 * time.Minute, "5m"},
		{2*time.Hour + 30*time.Minute, "2h"},
		{72 * time.Hour, "3d"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAge(tt.in))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "<none>", FormatTimestamp(time.Time{}, now))
	assert.Equal(t, "2d", FormatTimestamp(now.Add(-48*time.Hour), now))
}
