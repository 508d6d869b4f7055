package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusLost, StatusClaimed, true},
		{StatusFound, StatusClaimed, true},
		{StatusClaimed, StatusLost, false},
		{StatusClaimed, StatusFound, false},
		{StatusClaimed, StatusClaimed, false},
		{StatusLost, StatusFound, false},
		{StatusFound, StatusLost, false},
		{StatusLost, StatusLost, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"lost", "found", "claimed"} {
		_, ok := ParseStatus(valid)
		assert.True(t, ok, valid)
	}
	_, ok := ParseStatus("misplaced")
	assert.False(t, ok)
}

func TestReporterName(t *testing.T) {
	item := &LostItem{FirstName: " John ", LastName: "Doe"}
	assert.Equal(t, "John Doe", item.ReporterName())

	anonymous := &FoundItem{}
	assert.Equal(t, "", anonymous.ReporterName())
}
