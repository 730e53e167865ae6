package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	slots, err := GenerateSlots("2026-09-01", "10:00", "12:00")
	require.NoError(t, err)
	require.Len(t, slots, 4)
	assert.Equal(t, "10:00", slots[0].Start)
	assert.Equal(t, "10:30", slots[0].End)
	assert.Equal(t, "11:30", slots[3].Start)
	assert.Equal(t, "12:00", slots[3].End)
	for _, s := range slots {
		assert.Equal(t, "2026-09-01", s.Date)
		assert.False(t, s.IsBooked)
	}
}

func TestGenerateSlotsDropsPartialTail(t *testing.T) {
	slots, err := GenerateSlots("2026-09-01", "10:00", "10:45")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "10:30", slots[0].End)
}

func TestGenerateSlotsRejectsBadInput(t *testing.T) {
	_, err := GenerateSlots("01-09-2026", "10:00", "12:00")
	assert.Error(t, err)
	_, err = GenerateSlots("2026-09-01", "ten", "12:00")
	assert.Error(t, err)
	_, err = GenerateSlots("2026-09-01", "12:00", "10:00")
	assert.Error(t, err)
	_, err = GenerateSlots("2026-09-01", "10:00", "10:15")
	assert.Error(t, err)
}
