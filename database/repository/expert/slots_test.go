package expertRepo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"expertbook/models"
)

func TestFindDuplicateSlot(t *testing.T) {
	slots := []models.Slot{
		{Date: "2026-02-21", Time: "10:00 AM"},
		{Date: "2026-02-21", Time: "11:00 AM"},
		{Date: "2026-02-22", Time: "10:00 AM"},
	}
	_, ok := findDuplicateSlot(slots)
	require.False(t, ok)

	dup, ok := findDuplicateSlot(append(slots, models.Slot{Date: "2026-02-21", Time: "10:00 AM"}))
	require.True(t, ok)
	require.Equal(t, "2026-02-21", dup.Date)
	require.Equal(t, "10:00 AM", dup.Time)

	_, ok = findDuplicateSlot(nil)
	require.False(t, ok)
}
