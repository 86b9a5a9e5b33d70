package service

import (
	"testing"
	"time"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/pkg/timex"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func d(s string) timex.Date {
	return timex.MustParseDate(s)
}

func TestNextFertilization(t *testing.T) {
	tests := []struct {
		name      string
		today     string
		lastRepot string
		want      string
	}{
		{name: "past the season moves to next march", today: "15.08.2023", lastRepot: "Not Yet", want: "15.03.2024"},
		{name: "repot cooldown dominates", today: "01.01.2023", lastRepot: "15.02.2023", want: "15.03.2023"},
		{name: "inside the season", today: "10.04.2023", lastRepot: "Not Yet", want: "10.06.2023"},
		{name: "september candidate is kept", today: "30.07.2023", lastRepot: "Not Yet", want: "30.09.2023"},
		{name: "december candidate", today: "05.10.2023", lastRepot: "Not Yet", want: "05.03.2024"},
		{name: "february candidate is not clamped", today: "20.12.2023", lastRepot: "Not Yet", want: "20.02.2024"},
		{name: "month end clamps the day", today: "31.12.2023", lastRepot: "Not Yet", want: "29.02.2024"},
		{name: "old repot has no effect", today: "10.04.2023", lastRepot: "01.01.2022", want: "10.06.2023"},
		{name: "cooldown is not clamped to the season", today: "15.08.2023", lastRepot: "20.03.2024", want: "20.04.2024"},
		{name: "cooldown past the season stays", today: "01.06.2023", lastRepot: "15.09.2023", want: "15.10.2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextFertilization(d(tt.today), d(tt.lastRepot))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestInitialFertilization(t *testing.T) {
	s := NewSchedule(DefaultScheduleConfig())

	// 生长季内购买：7 天后
	assert.Equal(t, "08.05.2023", s.InitialFertilization(d("20.05.2023"), d("01.05.2023")).String())
	// 生长季外：一个月后
	assert.Equal(t, "30.12.2023", s.InitialFertilization(d("05.11.2023"), d("30.11.2023")).String())
	// 判断依据是今天而不是购买日期
	assert.Equal(t, "08.11.2023", s.InitialFertilization(d("01.04.2024"), d("01.11.2023")).String())
}

func TestDue(t *testing.T) {
	s := NewSchedule(DefaultScheduleConfig())
	records := []*domain.Bonsai{
		{ID: 0, Name: "due today", NextFertilize: d("01.05.2023")},
		{ID: 1, Name: "overdue", NextFertilize: d("01.04.2023")},
		{ID: 2, Name: "later", NextFertilize: d("02.05.2023")},
		{ID: 3, Name: "never"},
	}
	due := s.Due(records, d("01.05.2023"))
	assert.Len(t, due, 2)
	assert.Equal(t, "due today", due[0].Name)
	assert.Equal(t, "overdue", due[1].Name)
}

func TestScheduleAdvance(t *testing.T) {
	s := NewSchedule(DefaultScheduleConfig())
	today := d("01.01.2023")
	b := &domain.Bonsai{ID: 1, LastRepot: d("15.02.2023")}

	f, ok := s.Advance(b, domain.ActionFertilize, today)
	assert.True(t, ok)
	assert.Equal(t, domain.FieldNextFertilize, f)
	assert.Equal(t, "15.03.2023", b.NextFertilize.String())

	for _, a := range []domain.Action{domain.ActionPrune, domain.ActionRepot, domain.ActionWire} {
		f, ok := s.Advance(b, a, today)
		assert.True(t, ok)
		assert.True(t, b.Get(f).Equal(today), "action %s", a)
	}

	_, ok = s.Advance(b, domain.Action("water"), today)
	assert.False(t, ok)
}

func genDate() gopter.Gen {
	return gen.IntRange(0, 365*40).Map(func(n int) timex.Date {
		return timex.NewDate(2000, time.January, 1).AddDays(n)
	})
}

// 结果要么落在生长季内（或一月、二月），要么等于换盆冷却下限；且从不早于冷却下限
func TestProperty_NextFertilization(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)
	s := NewSchedule(DefaultScheduleConfig())

	properties.Property("never before the repot cooldown", prop.ForAll(
		func(today, repot timex.Date) bool {
			got := s.NextFertilization(today, repot)
			return !got.Before(repot.AddMonths(1))
		},
		genDate(), genDate(),
	))

	properties.Property("without repot the result is never after september", prop.ForAll(
		func(today timex.Date) bool {
			got := s.NextFertilization(today, timex.Unset())
			return got.Month() <= time.September && got.After(today)
		},
		genDate(),
	))

	properties.Property("result is seasonal or the cooldown floor", prop.ForAll(
		func(today, repot timex.Date) bool {
			got := s.NextFertilization(today, repot)
			return got.Month() <= time.September || got.Equal(repot.AddMonths(1))
		},
		genDate(), genDate(),
	))

	properties.TestingRun(t)
}
