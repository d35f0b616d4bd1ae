// Package fdmath holds the simple-interest money and date math shared by the
// lifecycle, withdrawal and statement engines. All intermediate divisions use
// 10-digit precision; final monetary results round to 2 decimals half-up.
package fdmath

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	intermediatePrecision = 10
	daysPerYear           = 365
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// MaturityAmount projects A = P·(1 + r·t) where r is the annual rate percent
// divided by 100 and t is the term in years. Result is rounded to 2 decimals
// half-up.
func MaturityAmount(principal, annualRatePercent decimal.Decimal, termInMonths int) decimal.Decimal {
	if annualRatePercent.IsZero() {
		return principal.Round(2)
	}
	return principal.Mul(growthFactor(annualRatePercent, termInMonths)).Round(2)
}

// PrincipalFromMaturity inverts the simple-interest maturity formula:
// P = M / (1 + r·t), rounded to 4 decimal places half-up. When the rate is
// zero the principal equals the maturity value.
func PrincipalFromMaturity(maturityValue, annualRatePercent decimal.Decimal, termInMonths int) decimal.Decimal {
	if annualRatePercent.IsZero() {
		return maturityValue
	}
	return maturityValue.DivRound(growthFactor(annualRatePercent, termInMonths), 4)
}

// AccruedInterest computes simple daily-rate accrual:
// dailyRate = annualRatePercent/100/365; accrued = principal·dailyRate·days,
// rounded to 2 decimals half-up.
func AccruedInterest(principal, annualRatePercent decimal.Decimal, daysActive int) decimal.Decimal {
	if daysActive <= 0 || annualRatePercent.IsZero() {
		return decimal.Zero.Round(2)
	}
	dailyRate := annualRatePercent.
		DivRound(hundred, intermediatePrecision).
		DivRound(decimal.NewFromInt(daysPerYear), intermediatePrecision)
	return principal.Mul(dailyRate).Mul(decimal.NewFromInt(int64(daysActive))).Round(2)
}

// CompletionPercent expresses elapsed term days as a percentage of the total
// term, at 4-decimal precision.
func CompletionPercent(daysActive, totalTermDays int) decimal.Decimal {
	if totalTermDays <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(daysActive)).
		Mul(hundred).
		DivRound(decimal.NewFromInt(int64(totalTermDays)), 4)
}

// WholeMonthsBetween counts whole calendar months from one date to another.
// A partial trailing month does not count. Returns 0 when to precedes from.
func WholeMonthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// DaysBetween counts whole days from one UTC date to another. Negative when
// to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

func growthFactor(annualRatePercent decimal.Decimal, termInMonths int) decimal.Decimal {
	years := decimal.NewFromInt(int64(termInMonths)).DivRound(twelve, intermediatePrecision)
	rate := annualRatePercent.DivRound(hundred, intermediatePrecision)
	return one.Add(rate.Mul(years))
}
