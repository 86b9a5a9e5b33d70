package timex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "padded", in: "22.03.2023", want: NewDate(2023, time.March, 22)},
		{name: "single digits", in: "1.3.2023", want: NewDate(2023, time.March, 1)},
		{name: "surrounding space", in: "  04.02.2023 ", want: NewDate(2023, time.February, 4)},
		{name: "sentinel", in: "Not Yet", want: Unset()},
		{name: "sentinel lower case", in: "not yet", want: Unset()},
		{name: "empty", in: "", want: Unset()},
		{name: "iso layout", in: "2023-03-22", wantErr: true},
		{name: "month out of range", in: "01.13.2023", wantErr: true},
		{name: "day out of range", in: "30.02.2023", wantErr: true},
		{name: "two digit year", in: "01.02.23", wantErr: true},
		{name: "garbage", in: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
			assert.Equal(t, tt.want.IsSet(), got.IsSet())
		})
	}
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "05.03.2024", NewDate(2024, time.March, 5).String())
	assert.Equal(t, UnsetText, Unset().String())
}

func TestDate_AddMonths(t *testing.T) {
	tests := []struct {
		from Date
		n    int
		want Date
	}{
		{NewDate(2023, time.August, 15), 2, NewDate(2023, time.October, 15)},
		{NewDate(2023, time.October, 15), 5, NewDate(2024, time.March, 15)},
		{NewDate(2023, time.December, 31), 2, NewDate(2024, time.February, 29)},
		{NewDate(2022, time.December, 31), 2, NewDate(2023, time.February, 28)},
		{NewDate(2023, time.January, 31), 1, NewDate(2023, time.February, 28)},
		{NewDate(2023, time.March, 31), -1, NewDate(2023, time.February, 28)},
		{NewDate(2023, time.January, 15), -2, NewDate(2022, time.November, 15)},
	}

	for _, tt := range tests {
		got := tt.from.AddMonths(tt.n)
		assert.True(t, tt.want.Equal(got), "%s + %d months = %s, want %s", tt.from, tt.n, got, tt.want)
	}

	assert.False(t, Unset().AddMonths(3).IsSet())
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2023, time.March, 1)
	b := NewDate(2023, time.March, 15)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(NewDate(2023, time.March, 1)))
	assert.True(t, Unset().Before(a))
	assert.True(t, Unset().Equal(Unset()))
}

func TestDate_ScanValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("17.03.2023"))
	assert.True(t, d.Equal(NewDate(2023, time.March, 17)))

	require.NoError(t, d.Scan([]byte("Not Yet")))
	assert.False(t, d.IsSet())

	require.NoError(t, d.Scan(nil))
	assert.False(t, d.IsSet())

	assert.Error(t, d.Scan(42))

	v, err := NewDate(2022, time.September, 24).Value()
	require.NoError(t, err)
	assert.Equal(t, "24.09.2022", v)
}

func TestMonthsMod(t *testing.T) {
	assert.Equal(t, 5, MonthsMod(3-10))
	assert.Equal(t, 0, MonthsMod(12))
	assert.Equal(t, 6, MonthsMod(3-9))
}
