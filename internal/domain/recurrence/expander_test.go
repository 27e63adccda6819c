package recurrence

import (
	"errors"
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datesEqual(got, want []time.Time) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			return false
		}
	}
	return true
}

func TestExpandOneShot(t *testing.T) {
	anchor := date(2026, time.March, 15)

	t.Run("inside window", func(t *testing.T) {
		got, err := Expand(OneShot(), anchor, date(2026, time.March, 1), date(2026, time.March, 31))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !datesEqual(got, []time.Time{anchor}) {
			t.Errorf("expected single occurrence on anchor, got %v", got)
		}
	})

	t.Run("outside window", func(t *testing.T) {
		got, err := Expand(OneShot(), anchor, date(2026, time.April, 1), date(2026, time.April, 30))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no occurrences, got %v", got)
		}
	})
}

func TestExpandWeekly(t *testing.T) {
	// Anchored on a Monday; the window covers four weeks.
	anchor := date(2026, time.January, 5)

	got, err := Expand(Every(TypeWeekly), anchor, date(2026, time.January, 1), date(2026, time.January, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2026, time.January, 5),
		date(2026, time.January, 12),
		date(2026, time.January, 19),
		date(2026, time.January, 26),
	}
	if !datesEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	for _, d := range got {
		if d.Weekday() != time.Monday {
			t.Errorf("expected every occurrence on Monday, got %s on %s", d.Format("2006-01-02"), d.Weekday())
		}
	}
}

func TestExpandMonthlyClampsToShortMonths(t *testing.T) {
	anchor := date(2026, time.January, 31)

	got, err := Expand(Every(TypeMonthly), anchor, date(2026, time.January, 1), date(2026, time.April, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2026, time.January, 31),
		date(2026, time.February, 28),
		date(2026, time.March, 31),
		date(2026, time.April, 30),
	}
	if !datesEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExpandMonthlyClampsToLeapFebruary(t *testing.T) {
	anchor := date(2028, time.January, 31)

	got, err := Expand(Every(TypeMonthly), anchor, date(2028, time.February, 1), date(2028, time.February, 29))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{date(2028, time.February, 29)}
	if !datesEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExpandAfterCount(t *testing.T) {
	rule := Rule{Type: TypeDaily, End: EndAfterCount, Count: 3}
	anchor := date(2026, time.June, 1)

	t.Run("series stops at count", func(t *testing.T) {
		got, err := Expand(rule, anchor, date(2026, time.June, 1), date(2026, time.June, 30))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []time.Time{
			date(2026, time.June, 1),
			date(2026, time.June, 2),
			date(2026, time.June, 3),
		}
		if !datesEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("window past the end of the series", func(t *testing.T) {
		got, err := Expand(rule, anchor, date(2026, time.June, 10), date(2026, time.June, 30))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no occurrences, got %v", got)
		}
	})
}

func TestExpandUntilDate(t *testing.T) {
	rule := Rule{Type: TypeWeekly, End: EndUntilDate, UntilDate: date(2026, time.January, 19)}
	anchor := date(2026, time.January, 5)

	got, err := Expand(rule, anchor, date(2026, time.January, 1), date(2026, time.February, 28))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2026, time.January, 5),
		date(2026, time.January, 12),
		date(2026, time.January, 19),
	}
	if !datesEqual(got, want) {
		t.Errorf("expected series to end on the until date, got %v", got)
	}
}

func TestExpandCustomInterval(t *testing.T) {
	rule := Rule{Type: TypeCustom, Interval: 2, Unit: UnitWeeks, End: EndNever}
	anchor := date(2026, time.January, 2)

	got, err := Expand(rule, anchor, date(2026, time.January, 1), date(2026, time.January, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2026, time.January, 2),
		date(2026, time.January, 16),
		date(2026, time.January, 30),
	}
	if !datesEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExpandSkipsOccurrencesBeforeWindow(t *testing.T) {
	// Anchor years before the window; only in-window dates come back.
	anchor := date(2020, time.January, 15)

	got, err := Expand(Every(TypeMonthly), anchor, date(2026, time.March, 1), date(2026, time.April, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2026, time.March, 15),
		date(2026, time.April, 15),
	}
	if !datesEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExpandInvalidInput(t *testing.T) {
	anchor := date(2026, time.January, 1)

	t.Run("window end before start", func(t *testing.T) {
		_, err := Expand(Every(TypeDaily), anchor, date(2026, time.February, 1), date(2026, time.January, 1))
		if !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("expected ErrInvalidWindow, got %v", err)
		}
	})

	t.Run("custom rule without interval", func(t *testing.T) {
		rule := Rule{Type: TypeCustom, Unit: UnitDays, End: EndNever}
		_, err := Expand(rule, anchor, anchor, date(2026, time.December, 31))
		if !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("expected ErrInvalidInterval, got %v", err)
		}
	})

	t.Run("after count without count", func(t *testing.T) {
		rule := Rule{Type: TypeDaily, End: EndAfterCount}
		_, err := Expand(rule, anchor, anchor, date(2026, time.December, 31))
		if !errors.Is(err, ErrInvalidCount) {
			t.Errorf("expected ErrInvalidCount, got %v", err)
		}
	})

	t.Run("until date without date", func(t *testing.T) {
		rule := Rule{Type: TypeWeekly, End: EndUntilDate}
		_, err := Expand(rule, anchor, anchor, date(2026, time.December, 31))
		if !errors.Is(err, ErrMissingUntilDate) {
			t.Errorf("expected ErrMissingUntilDate, got %v", err)
		}
	})
}
