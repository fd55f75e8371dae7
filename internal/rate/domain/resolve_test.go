package domain

import (
	"testing"

	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveExpectedRate(t *testing.T) {
	rates := &DailyRate{
		Date:        "2026-08-01",
		TandoorRate: 100,
		BoilerRate:  80,
		EggRate:     50,
	}

	tests := []struct {
		name    string
		rates   *DailyRate
		formula *markupdomain.Formula
		want    float64
	}{
		{
			name:  "tandoor plus twenty",
			rates: rates,
			formula: &markupdomain.Formula{
				Base: markupdomain.BaseRateTandoor,
				Steps: []markupdomain.Step{
					{Operator: markupdomain.OperatorAdd, Operand: 20},
				},
			},
			want: 120,
		},
		{
			name:  "egg tray to per-piece",
			rates: rates,
			formula: &markupdomain.Formula{
				Base: markupdomain.BaseRateEgg,
				Steps: []markupdomain.Step{
					{Operator: markupdomain.OperatorDivide, Operand: 10},
					{Operator: markupdomain.OperatorAdd, Operand: 5},
				},
			},
			want: 10,
		},
		{
			name:    "missing rates",
			rates:   nil,
			formula: &markupdomain.Formula{Base: markupdomain.BaseRateTandoor},
			want:    0,
		},
		{
			name:    "missing formula",
			rates:   rates,
			formula: nil,
			want:    0,
		},
		{
			name:  "unknown base category",
			rates: rates,
			formula: &markupdomain.Formula{
				Base: markupdomain.BaseRate("MysteryRate"),
				Steps: []markupdomain.Step{
					{Operator: markupdomain.OperatorAdd, Operand: 20},
				},
			},
			want: 0,
		},
		{
			name:  "division by zero is skipped",
			rates: rates,
			formula: &markupdomain.Formula{
				Base: markupdomain.BaseRateBoiler,
				Steps: []markupdomain.Step{
					{Operator: markupdomain.OperatorDivide, Operand: 0},
					{Operator: markupdomain.OperatorAdd, Operand: 5},
				},
			},
			want: 85,
		},
		{
			name:  "negative result clamps to zero",
			rates: rates,
			formula: &markupdomain.Formula{
				Base: markupdomain.BaseRateBoiler,
				Steps: []markupdomain.Step{
					{Operator: markupdomain.OperatorSubtract, Operand: 200},
				},
			},
			want: 0,
		},
		{
			name:  "rounds to two decimals",
			rates: rates,
			formula: &markupdomain.Formula{
				Base: markupdomain.BaseRateTandoor,
				Steps: []markupdomain.Step{
					{Operator: markupdomain.OperatorDivide, Operand: 3},
				},
			},
			want: 33.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveExpectedRate(tt.rates, tt.formula))
		})
	}
}
