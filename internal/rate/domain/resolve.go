package domain

import (
	"math"

	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
)

// ResolveExpectedRate converts a day's base rates plus a markup formula into
// the expected unit rate. Either input being absent yields exactly 0.0, the
// "no rate data" sentinel. An unrecognized base category resolves to a base
// of 0.0. Division by a zero operand leaves the running rate unchanged. The
// result is clamped to a minimum of 0.0 and rounded to 2 decimal places.
func ResolveExpectedRate(rates *DailyRate, formula *markupdomain.Formula) float64 {
	if rates == nil || formula == nil {
		return 0.0
	}

	var rate float64
	switch formula.Base {
	case markupdomain.BaseRateTandoor:
		rate = rates.TandoorRate
	case markupdomain.BaseRateBoiler:
		rate = rates.BoilerRate
	case markupdomain.BaseRateEgg:
		rate = rates.EggRate
	}

	for _, step := range formula.Steps {
		rate = applyStep(rate, step)
	}

	return round2(math.Max(0.0, rate))
}

func applyStep(rate float64, step markupdomain.Step) float64 {
	switch step.Operator {
	case markupdomain.OperatorAdd:
		return rate + step.Operand
	case markupdomain.OperatorSubtract:
		return rate - step.Operand
	case markupdomain.OperatorMultiply:
		return rate * step.Operand
	case markupdomain.OperatorDivide:
		if step.Operand == 0 {
			return rate
		}
		return rate / step.Operand
	}
	return rate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
