package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookvenue/models/venue"
)

func dayNightCourt(duration int) venue.Court {
	return venue.Court{
		ID:             "c1",
		CourtName:      "Court 1",
		DayStartTime:   "06:00",
		DayEndTime:     "17:00",
		DaySlotPrice:   500,
		NightStartTime: "17:00",
		NightEndTime:   "23:00",
		NightSlotPrice: 800,
		Duration:       duration,
	}
}

func at(date string, hour, minute int) FixedClock {
	d, _ := time.ParseInLocation(DateLayout, date, time.UTC)
	return FixedClock(d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute))
}

func TestResolve_FutureDateKeepsEverySlot(t *testing.T) {
	r := NewResolver(at("2025-03-10", 20, 0))

	slots, err := r.Resolve(dayNightCourt(60), "2025-03-11")
	require.NoError(t, err)
	require.Len(t, slots, 17)

	var day, night int
	for _, s := range slots {
		if s.Start < 17*60 {
			day++
			assert.Equal(t, 500.0, s.Price, s.Label)
		} else {
			night++
			assert.Equal(t, 800.0, s.Price, s.Label)
		}
	}
	assert.Equal(t, 11, day)
	assert.Equal(t, 6, night)
	assert.Equal(t, "06:00 - 07:00", slots[0].Label)
	assert.Equal(t, "22:00 - 23:00", slots[16].Label)
}

func TestResolve_TodayDropsElapsedSlots(t *testing.T) {
	r := NewResolver(at("2025-03-10", 18, 15))

	slots, err := r.Resolve(dayNightCourt(30), "2025-03-10")
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	assert.Equal(t, "18:30", slots[0].StartTime())
	for _, s := range slots {
		assert.Greater(t, int(s.Start), 18*60+15)
	}

	hourly, err := r.Resolve(dayNightCourt(60), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"19:00", "20:00", "21:00", "22:00"}, starts(hourly))
}

func TestResolve_SlotStartingNowIsDropped(t *testing.T) {
	r := NewResolver(at("2025-03-10", 19, 0))

	slots, err := r.Resolve(dayNightCourt(60), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "20:00", slots[0].StartTime())
}

func TestResolve_PastDateIsNotFiltered(t *testing.T) {
	r := NewResolver(at("2025-03-10", 23, 59))

	slots, err := r.Resolve(dayNightCourt(60), "2025-03-09")
	require.NoError(t, err)
	assert.Len(t, slots, 17)
}

func TestResolve_InvalidDate(t *testing.T) {
	r := NewResolver(at("2025-03-10", 9, 0))

	_, err := r.Resolve(dayNightCourt(60), "10/03/2025")
	assert.Error(t, err)
}

func TestResolve_PrefersServerSlots(t *testing.T) {
	court := dayNightCourt(60)
	court.HasServerSlots = true
	court.ServerSlots = []venue.SlotOffer{
		{Time: "19:00 - 20:00", Price: 900},
		{Time: "07:00 - 08:00", Price: 450},
		{Time: "not a time", Price: 1},
	}
	r := NewResolver(at("2025-03-10", 9, 0))

	slots, err := r.Resolve(court, "2025-03-12")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "07:00 - 08:00", slots[0].Label)
	assert.Equal(t, 450.0, slots[0].Price)
	assert.Equal(t, "08:00", slots[0].EndTime())
	assert.Equal(t, "19:00 - 20:00", slots[1].Label)
}

func TestResolve_EmptyServerListIsAuthoritative(t *testing.T) {
	court := dayNightCourt(60)
	court.HasServerSlots = true
	court.ServerSlots = []venue.SlotOffer{}
	r := NewResolver(at("2025-03-10", 9, 0))

	slots, err := r.Resolve(court, "2025-03-12")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSynthesize_DegenerateInputs(t *testing.T) {
	noDuration := dayNightCourt(0)
	missingBound := dayNightCourt(60)
	missingBound.NightEndTime = ""
	garbled := dayNightCourt(60)
	garbled.DayStartTime = "six"

	for name, c := range map[string]venue.Court{
		"zero duration": noDuration,
		"missing bound": missingBound,
		"garbled bound": garbled,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, Synthesize(c))
		})
	}
}

func TestSynthesize_PartialTrailingSlotIsNotEmitted(t *testing.T) {
	c := dayNightCourt(90)
	slots := Synthesize(c)

	// day: 06:00..15:00 (7 slots, 16:30 would overrun 17:00); night: 17:00..21:30 (4 slots)
	assert.Len(t, slots, 11)
	assert.Equal(t, "15:00 - 16:30", slots[6].Label)
	assert.Equal(t, "21:30 - 23:00", slots[10].Label)
}

func TestSynthesize_AcceptsSeconds(t *testing.T) {
	c := dayNightCourt(60)
	c.DayStartTime = "06:00:00"
	c.NightEndTime = "23:00:00"

	assert.Len(t, Synthesize(c), 17)
}

func TestFromServer_ExplicitStartEnd(t *testing.T) {
	slots := FromServer([]venue.SlotOffer{{StartTime: "10:00", EndTime: "11:00", Price: 300}})

	require.Len(t, slots, 1)
	assert.Equal(t, "10:00 - 11:00", slots[0].Label)
	assert.True(t, slots[0].HasEnd)
}

func TestFromServer_UnspacedLabel(t *testing.T) {
	slots := FromServer([]venue.SlotOffer{
		{Time: "18:00-19:00", Price: 800},
		{Time: "09:00 -10:00", Price: 500},
	})

	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].StartTime())
	assert.Equal(t, "10:00", slots[0].EndTime())
	assert.Equal(t, "18:00-19:00", slots[1].Label)
	assert.Equal(t, "19:00", slots[1].EndTime())

	kept := DropElapsed(slots, TimeOfDay(17*60))
	require.Len(t, kept, 1)
	assert.Equal(t, 800.0, kept[0].Price)
}

func TestFromServer_BareStart(t *testing.T) {
	slots := FromServer([]venue.SlotOffer{{Time: "10:00", Price: 300}})

	require.Len(t, slots, 1)
	assert.False(t, slots[0].HasEnd)
	assert.Equal(t, "", slots[0].EndTime())
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"06:00", "06:00", false},
		{"6:05", "06:05", false},
		{"23:30:00", "23:30", false},
		{"24:30", "24:30", false},
		{"", "", true},
		{"12", "", true},
		{"12:60", "", true},
		{"ab:cd", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.String())
	}
}

func TestNextDays(t *testing.T) {
	days := NextDays(at("2025-03-30", 10, 0), 3)

	require.Len(t, days, 3)
	assert.Equal(t, Day{Weekday: "Sun", Date: 30, Month: "Mar", FullDate: "2025-03-30"}, days[0])
	assert.Equal(t, "2025-04-01", days[2].FullDate)
	assert.Equal(t, "Apr", days[2].Month)
}

func starts(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime())
	}
	return out
}
