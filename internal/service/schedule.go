package service

import (
	"time"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/pkg/timex"
)

// Schedule computes maintenance dates. It holds no state besides its rules.
// Schedule 计算养护日期，除规则外无状态
type Schedule struct {
	cfg ScheduleConfig
}

// NewSchedule 创建 Schedule
func NewSchedule(cfg ScheduleConfig) Schedule {
	return Schedule{cfg: cfg}
}

// Config returns the rules in use
func (s Schedule) Config() ScheduleConfig {
	return s.cfg
}

// NextFertilization returns the next fertilization date after fertilizing on today.
//
// The candidate is today plus the interval. A candidate after the growing season
// is pushed forward to the season start of the following year. When lastRepot is
// set, the candidate is raised to lastRepot plus the cooldown; that floor is
// applied last and is not clamped to the season again.
//
// NextFertilization 计算下一次施肥日期：先加间隔，超出生长季则推到次年季初，
// 最后应用换盆冷却期下限（不再重新限制季节）
func (s Schedule) NextFertilization(today, lastRepot timex.Date) timex.Date {
	candidate := today.AddMonths(s.cfg.FertilizeIntervalMonths)

	if int(candidate.Month()) > s.cfg.SeasonEndMonth {
		candidate = candidate.AddMonths(timex.MonthsMod(s.cfg.SeasonStartMonth - int(candidate.Month())))
	}

	if lastRepot.IsSet() {
		floor := lastRepot.AddMonths(s.cfg.RepotCooldownMonths)
		if candidate.Before(floor) {
			candidate = floor
		}
	}
	return candidate
}

// InitialFertilization is the first fertilization date of a newly bought tree.
// Trees bought while today is in season get it after a few days, others after a month.
// InitialFertilization 新购盆景的首次施肥日期
func (s Schedule) InitialFertilization(today, purchased timex.Date) timex.Date {
	if s.InSeason(today.Month()) {
		return purchased.AddDays(s.cfg.NewTreeInSeasonDays)
	}
	return purchased.AddMonths(s.cfg.NewTreeOffSeasonMonths)
}

// InSeason reports whether m lies inside the growing season
func (s Schedule) InSeason(m time.Month) bool {
	return int(m) >= s.cfg.SeasonStartMonth && int(m) <= s.cfg.SeasonEndMonth
}

// Due returns the records whose next fertilization date is set and not after today
// Due 返回施肥日期已到的盆景
func (s Schedule) Due(records []*domain.Bonsai, today timex.Date) []*domain.Bonsai {
	var out []*domain.Bonsai
	for _, b := range records {
		if b.NextFertilize.IsSet() && !b.NextFertilize.After(today) {
			out = append(out, b)
		}
	}
	return out
}

// Advance applies a completed action to b. Fertilizing schedules the next date
// from b's own last repot; every other action records today.
// Advance 将完成的养护操作写入 b
func (s Schedule) Advance(b *domain.Bonsai, action domain.Action, today timex.Date) (domain.Field, bool) {
	f, ok := action.Field()
	if !ok {
		return 0, false
	}
	if action == domain.ActionFertilize {
		b.Set(f, s.NextFertilization(today, b.LastRepot))
	} else {
		b.Set(f, today)
	}
	return f, true
}

// NextFertilization uses the default rules
// NextFertilization 使用默认规则计算下一次施肥日期
func NextFertilization(today, lastRepot timex.Date) timex.Date {
	return NewSchedule(DefaultScheduleConfig()).NextFertilization(today, lastRepot)
}
