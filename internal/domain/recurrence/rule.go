// Package recurrence implements recurrence rules and their expansion into
// concrete calendar occurrence dates.
package recurrence

import "time"

// Type represents the recurrence frequency of a rule.
type Type string

const (
	TypeNone    Type = "none"
	TypeDaily   Type = "daily"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
	TypeYearly  Type = "yearly"
	TypeCustom  Type = "custom"
)

// Unit represents the step unit of a custom rule.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitWeeks  Unit = "weeks"
	UnitMonths Unit = "months"
	UnitYears  Unit = "years"
)

// EndCondition represents how a recurrence series terminates.
type EndCondition string

const (
	EndNever      EndCondition = "never"
	EndUntilDate  EndCondition = "until_date"
	EndAfterCount EndCondition = "after_count"
)

// Rule describes a recurrence: a frequency, an optional custom interval, and
// an end condition. The zero value is a valid one-shot (none) rule.
type Rule struct {
	Type      Type
	Interval  int  // custom rules only, >= 1
	Unit      Unit // custom rules only
	End       EndCondition
	UntilDate time.Time // end = until_date only
	Count     int       // end = after_count only, >= 1
}

// OneShot returns the rule for a non-recurring planned transaction.
func OneShot() Rule {
	return Rule{Type: TypeNone, End: EndNever}
}

// Every returns a simple rule with the given frequency and no end condition.
func Every(t Type) Rule {
	return Rule{Type: t, End: EndNever}
}

// Validate checks the internal consistency of the rule.
func (r Rule) Validate() error {
	switch r.Type {
	case TypeNone, TypeDaily, TypeWeekly, TypeMonthly, TypeYearly:
	case TypeCustom:
		if r.Interval < 1 {
			return ErrInvalidInterval
		}
		switch r.Unit {
		case UnitDays, UnitWeeks, UnitMonths, UnitYears:
		default:
			return ErrInvalidUnit
		}
	default:
		return ErrInvalidType
	}

	switch r.End {
	case EndNever:
	case EndUntilDate:
		if r.UntilDate.IsZero() {
			return ErrMissingUntilDate
		}
	case EndAfterCount:
		if r.Count < 1 {
			return ErrInvalidCount
		}
	default:
		return ErrInvalidEndCondition
	}

	return nil
}

// step returns the rule's period as (days, months). Exactly one of the two is
// non-zero for every recurring type; month-based periods need calendar
// arithmetic and cannot be reduced to days.
func (r Rule) step() (days int, months int) {
	switch r.Type {
	case TypeDaily:
		return 1, 0
	case TypeWeekly:
		return 7, 0
	case TypeMonthly:
		return 0, 1
	case TypeYearly:
		return 0, 12
	case TypeCustom:
		switch r.Unit {
		case UnitDays:
			return r.Interval, 0
		case UnitWeeks:
			return r.Interval * 7, 0
		case UnitMonths:
			return 0, r.Interval
		case UnitYears:
			return 0, r.Interval * 12
		}
	}
	return 0, 0
}
