// Package timex provides the calendar-day type used by maintenance records
// Package timex 提供养护记录使用的日历日期类型
package timex

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DateLayout is the display and storage layout (day.month.year)
	// DateLayout 显示与存储格式（日.月.年）
	DateLayout = "02.01.2006"

	// UnsetText marks a date that has never been recorded
	// UnsetText 表示从未记录过的日期
	UnsetText = "Not Yet"

	// parseLayout also accepts single-digit day and month
	parseLayout = "2.1.2006"
)

// ErrInvalidDate is returned when text cannot be read as day.month.year
// ErrInvalidDate 文本无法解析为 日.月.年 时返回
var ErrInvalidDate = errors.New("invalid date, expected dd.mm.yyyy")

// Date is a calendar day or the Unset sentinel.
// The zero value is Unset.
type Date struct {
	t   time.Time
	set bool
}

// NewDate builds a set Date; out-of-range values are normalized like time.Date
// NewDate 创建一个已设置的日期
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), set: true}
}

// FromTime takes the calendar day of t in its own location
// FromTime 取 t 在其自身时区下的日历日
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current local calendar day
func Today() Date {
	return FromTime(time.Now())
}

// Unset returns the "no action yet" value
func Unset() Date {
	return Date{}
}

// ParseDate reads day.month.year text.
// Empty text and "Not Yet" (any case) yield Unset.
// ParseDate 解析 日.月.年 文本，空字符串和 "Not Yet" 返回未设置
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, UnsetText) {
		return Unset(), nil
	}
	t, err := time.ParseInLocation(parseLayout, s, time.UTC)
	if err != nil {
		return Unset(), errors.Wrapf(ErrInvalidDate, "%q", s)
	}
	return FromTime(t), nil
}

// MustParseDate is ParseDate for literals known to be valid
// MustParseDate 用于已知合法的字面量
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsSet reports whether the date holds a calendar day
func (d Date) IsSet() bool {
	return d.set
}

// Time returns midnight UTC of the day; zero time when Unset
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) Year() int { return d.t.Year() }

func (d Date) Month() time.Month { return d.t.Month() }

func (d Date) Day() int { return d.t.Day() }

// AddMonths moves by n calendar months, clamping the day to the end of the
// target month (31.12 + 2 months = 28.02 or 29.02). Unset stays Unset.
// AddMonths 按日历月偏移，日期超出目标月末时取月末
func (d Date) AddMonths(n int) Date {
	if !d.set {
		return d
	}
	total := int(d.t.Month()) - 1 + n
	year := d.t.Year() + floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)
	day := d.t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

// AddDays moves by n days. Unset stays Unset.
func (d Date) AddDays(n int) Date {
	if !d.set {
		return d
	}
	return FromTime(d.t.AddDate(0, 0, n))
}

// Compare orders dates; Unset sorts before every set date
// Compare 比较日期，未设置排在所有已设置日期之前
func (d Date) Compare(o Date) int {
	switch {
	case !d.set && !o.set:
		return 0
	case !d.set:
		return -1
	case !o.set:
		return 1
	}
	return d.t.Compare(o.t)
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

func (d Date) Equal(o Date) bool { return d.Compare(o) == 0 }

// String formats as dd.mm.yyyy or "Not Yet"
func (d Date) String() string {
	if !d.set {
		return UnsetText
	}
	return d.t.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Value implements driver.Valuer; dates are stored as text columns
// Value 实现 driver.Valuer，日期以文本列存储
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Unset()
		return nil
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	case time.Time:
		*d = FromTime(v)
		return nil
	}
	return fmt.Errorf("timex: cannot scan %T into Date", value)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod is the non-negative remainder, (3-10) mod 12 = 5
func floorMod(a, b int) int {
	return ((a % b) + b) % b
}

// MonthsMod exposes floorMod for month arithmetic in callers
func MonthsMod(a int) int {
	return floorMod(a, 12)
}
