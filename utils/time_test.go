package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinePickupWindow(t *testing.T) {
	window, err := CombinePickupWindow("2025-06-01", "09:00", "11:00")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01T00:00:00", window.Date.Format("2006-01-02T15:04:05"))
	assert.Equal(t, "2025-06-01T09:00:00", window.Start.Format("2006-01-02T15:04:05"))
	assert.Equal(t, "2025-06-01T11:00:00", window.End.Format("2006-01-02T15:04:05"))
}

func TestCombinePickupWindowBadInputs(t *testing.T) {
	_, err := CombinePickupWindow("06/01/2025", "09:00", "11:00")
	assert.Error(t, err)

	_, err = CombinePickupWindow("2025-06-01", "9am", "11:00")
	assert.Error(t, err)

	_, err = CombinePickupWindow("2025-06-01", "09:00", "")
	assert.Error(t, err)
}
