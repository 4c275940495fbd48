package schedule

import (
	"testing"
	"time"

	"github.com/reservaon/api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestWindowContains(t *testing.T) {
	w := Window{Open: "09:00", Close: "18:00", Working: true}

	assert.False(t, w.Contains(8))
	assert.True(t, w.Contains(9))
	assert.True(t, w.Contains(17))
	assert.False(t, w.Contains(18), "closing hour itself is outside the window")
	assert.False(t, w.Contains(22))
}

func TestWindowHourParsing(t *testing.T) {
	assert.Equal(t, 7, Window{Open: "07:30"}.OpenHour())
	assert.Equal(t, 23, Window{Close: "23:00"}.CloseHour())

	// Unparseable values fall back to the defaults.
	assert.Equal(t, 9, Window{Open: ""}.OpenHour())
	assert.Equal(t, 18, Window{Close: "fechado"}.CloseHour())
}

func TestForFlatFields(t *testing.T) {
	company := &models.Company{
		OpeningTime: "08:00",
		ClosingTime: "20:00",
		WorkDays:    "1,2,3,4,5,6",
	}

	saturday := For(company, time.Saturday)
	assert.True(t, saturday.Working)
	assert.Equal(t, "08:00", saturday.Open)
	assert.Equal(t, "20:00", saturday.Close)

	sunday := For(company, time.Sunday)
	assert.False(t, sunday.Working)
}

func TestForDefaults(t *testing.T) {
	// A company that never configured anything works weekdays 09-18.
	company := &models.Company{}

	monday := For(company, time.Monday)
	assert.True(t, monday.Working)
	assert.Equal(t, DefaultOpeningTime, monday.Open)
	assert.Equal(t, DefaultClosingTime, monday.Close)

	assert.False(t, For(company, time.Sunday).Working)
	assert.False(t, For(company, time.Saturday).Working)
}

func TestForWorkSchedulePrecedence(t *testing.T) {
	company := &models.Company{
		OpeningTime: "09:00",
		ClosingTime: "18:00",
		WorkDays:    "1,2,3,4,5",
		WorkSchedule: []models.DaySchedule{
			{Day: int(time.Monday), Active: true, Start: "14:00", End: "22:00"},
			{Day: int(time.Wednesday), Active: false, Start: "09:00", End: "18:00"},
		},
	}

	// Monday has a structured entry: it wins over the flat fields.
	monday := For(company, time.Monday)
	assert.True(t, monday.Working)
	assert.Equal(t, "14:00", monday.Open)
	assert.Equal(t, "22:00", monday.Close)

	// Wednesday is explicitly inactive even though it is in workDays.
	assert.False(t, For(company, time.Wednesday).Working)

	// Tuesday has no structured entry: the flat fields apply.
	tuesday := For(company, time.Tuesday)
	assert.True(t, tuesday.Working)
	assert.Equal(t, "09:00", tuesday.Open)
}

func TestIsWorkDayIgnoresGarbage(t *testing.T) {
	company := &models.Company{WorkDays: "1, x, 3,"}

	assert.True(t, For(company, time.Monday).Working)
	assert.True(t, For(company, time.Wednesday).Working)
	assert.False(t, For(company, time.Tuesday).Working)
}
