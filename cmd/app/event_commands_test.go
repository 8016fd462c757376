package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPeriod(t *testing.T) {
	start := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	got := formatPeriod(start, start.Add(8*time.Hour))

	assert.Equal(t, "Wed, 02 Apr 2025 09:00:00 UTC - Wed, 02 Apr 2025 17:00:00 UTC", got)
}
