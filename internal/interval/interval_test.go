package interval

import (
	"encoding/json"
	"testing"

	"trainslot/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, day Weekday, start, end string) TimeInterval {
	t.Helper()
	s, err := ParseTimeOfDay(start)
	require.NoError(t, err)
	e, err := ParseTimeOfDay(end)
	require.NoError(t, err)
	iv, err := New(day, s, e)
	require.NoError(t, err)
	return iv
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, Monday, d)

	d, err = ParseWeekday(" SUNDAY ")
	require.NoError(t, err)
	assert.Equal(t, Sunday, d)

	_, err = ParseWeekday("Mondayish")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInterval))
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(8, 30, 0), tod)

	tod, err = ParseTimeOfDay("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(23, 59, 59), tod)

	for _, bad := range []string{"24:00", "12:60", "noon", "12", "-1:00"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewRejectsInvalidIntervals(t *testing.T) {
	start := NewTimeOfDay(9, 0, 0)

	// zero-length
	_, err := New(Monday, start, start)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInterval))

	// inverted
	_, err = New(Monday, start, NewTimeOfDay(8, 0, 0))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInterval))

	// bogus weekday
	_, err = New("Someday", start, NewTimeOfDay(10, 0, 0))
	require.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	a := mustInterval(t, Monday, "08:00", "12:00")
	b := mustInterval(t, Monday, "10:00", "14:00")
	c := mustInterval(t, Monday, "12:00", "13:00")
	d := mustInterval(t, Tuesday, "08:00", "12:00")

	assert.True(t, Overlaps(a, b))
	assert.False(t, Overlaps(a, c), "touching endpoints do not overlap")
	assert.False(t, Overlaps(a, d), "different weekdays never overlap")

	// fully enclosed
	inner := mustInterval(t, Monday, "09:00", "10:00")
	assert.True(t, Overlaps(a, inner))
}

func TestOverlapsIsSymmetric(t *testing.T) {
	pairs := [][2]TimeInterval{
		{mustInterval(t, Monday, "08:00", "12:00"), mustInterval(t, Monday, "10:00", "14:00")},
		{mustInterval(t, Monday, "08:00", "09:00"), mustInterval(t, Monday, "09:00", "10:00")},
		{mustInterval(t, Friday, "06:00", "07:00"), mustInterval(t, Friday, "18:00", "19:00")},
		{mustInterval(t, Monday, "08:00", "20:00"), mustInterval(t, Monday, "09:00", "10:00")},
	}
	for _, p := range pairs {
		assert.Equal(t, Overlaps(p[0], p[1]), Overlaps(p[1], p[0]), "%s vs %s", p[0], p[1])
	}
}

func TestContains(t *testing.T) {
	outer := mustInterval(t, Monday, "08:00", "12:00")

	assert.True(t, Contains(outer, outer), "containment is reflexive")
	assert.True(t, Contains(outer, mustInterval(t, Monday, "08:00", "09:00")))
	assert.True(t, Contains(outer, mustInterval(t, Monday, "11:00", "12:00")))
	assert.False(t, Contains(outer, mustInterval(t, Monday, "07:59", "09:00")))
	assert.False(t, Contains(outer, mustInterval(t, Monday, "11:00", "12:01")))
	assert.False(t, Contains(outer, mustInterval(t, Tuesday, "09:00", "10:00")))
}

func TestTimeOfDayJSON(t *testing.T) {
	iv := mustInterval(t, Monday, "08:00", "12:30")

	data, err := json.Marshal(iv)
	require.NoError(t, err)
	assert.JSONEq(t, `{"day_of_week":"Monday","start_time":"08:00:00","end_time":"12:30:00"}`, string(data))

	var back TimeInterval
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, iv, back)
}
