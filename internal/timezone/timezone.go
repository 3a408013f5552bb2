package timezone

import "time"

const (
	DefaultTimezone = "America/Recife"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// TodayIn is the salon-local calendar day as YYYY-MM-DD.
func TodayIn(tz string) string {
	return NowIn(tz).Format(DateLayout)
}

// Clock returns the current salon-local day; swapped out in tests.
type Clock func() string

func ClockIn(tz string) Clock {
	return func() string { return TodayIn(tz) }
}

func Fixed(day string) Clock {
	return func() string { return day }
}
