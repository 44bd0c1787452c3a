package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autonuoma/app/models"
)

func TestDateParsesAcceptedLayouts(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-01-05"`:           time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		`"2024-01-05T08:30:00Z"`: time.Date(2024, time.January, 5, 8, 30, 0, 0, time.UTC),
		`"2024-01-05 08:30:00"`:  time.Date(2024, time.January, 5, 8, 30, 0, 0, time.UTC),
	}

	for raw, want := range cases {
		var d models.Date
		require.NoError(t, json.Unmarshal([]byte(raw), &d), "input %s", raw)
		assert.True(t, d.Equal(want), "input %s: got %v", raw, d.Time)
	}
}

func TestDateRejectsGarbage(t *testing.T) {
	var d models.Date
	assert.Error(t, json.Unmarshal([]byte(`"05/01/2024"`), &d))
}

func TestDateNullAndEmpty(t *testing.T) {
	var d models.Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	out, err := json.Marshal(models.Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDateMarshalsRFC3339UTC(t *testing.T) {
	d := models.Date{Time: time.Date(2024, time.January, 5, 10, 0, 0, 0, time.FixedZone("EET", 2*3600))}

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-05T08:00:00Z"`, string(out))
}

func TestDayTruncatesToMidnightUTC(t *testing.T) {
	d := models.Date{Time: time.Date(2024, time.June, 15, 23, 59, 59, 0, time.UTC)}

	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), d.Day())
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled", "completed"} {
		assert.True(t, models.ValidStatus(s), s)
	}
	for _, s := range []string{"", "archived", "Pending", "CONFIRMED"} {
		assert.False(t, models.ValidStatus(s), s)
	}
}
