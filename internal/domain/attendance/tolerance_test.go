package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var lima = time.FixedZone("PET", -5*3600)

func at(hour, min, sec int) time.Time {
	return time.Date(2025, 1, 13, hour, min, sec, 0, lima)
}

func TestEffectiveCheckIn(t *testing.T) {
	tests := []struct {
		name    string
		checkIn time.Time
		want    time.Time
	}{
		{"exactly at start", at(8, 0, 0), at(8, 0, 0)},
		{"inside grace window", at(8, 7, 30), at(8, 0, 0)},
		{"at end of grace window", at(8, 15, 0), at(8, 0, 0)},
		{"one second after grace window", at(8, 15, 1), at(8, 15, 1)},
		{"before start", at(7, 59, 0), at(7, 59, 0)},
		{"afternoon", at(14, 0, 0), at(14, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveCheckIn(tt.checkIn, lima)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestEffectiveCheckIn_UsesServiceZone(t *testing.T) {
	// 13:10 UTC is 08:10 in Lima.
	checkIn := time.Date(2025, 1, 13, 13, 10, 0, 0, time.UTC)
	got := EffectiveCheckIn(checkIn, lima)
	assert.True(t, at(8, 0, 0).Equal(got))

	// In UTC the same instant is far outside the window.
	assert.True(t, checkIn.Equal(EffectiveCheckIn(checkIn, time.UTC)))
}

func TestIsLate(t *testing.T) {
	assert.False(t, IsLate(at(8, 0, 0), lima))
	assert.False(t, IsLate(at(8, 15, 0), lima))
	assert.True(t, IsLate(at(8, 15, 1), lima))
	assert.True(t, IsLate(at(9, 30, 0), lima))
	assert.False(t, IsLate(at(7, 45, 0), lima))
}
