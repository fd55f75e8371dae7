package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func op(o Operator) *Operator { return &o }
func val(v float64) *float64  { return &v }

func TestRuleFormula(t *testing.T) {
	tests := []struct {
		name      string
		rule      Rule
		wantSteps int
	}{
		{
			name: "both steps present",
			rule: Rule{
				BaseRate:  BaseRateEgg,
				Operator1: op(OperatorDivide), Value1: val(10),
				Operator2: op(OperatorAdd), Value2: val(5),
			},
			wantSteps: 2,
		},
		{
			name: "second step absent",
			rule: Rule{
				BaseRate:  BaseRateTandoor,
				Operator1: op(OperatorAdd), Value1: val(20),
			},
			wantSteps: 1,
		},
		{
			name:      "no steps",
			rule:      Rule{BaseRate: BaseRateBoiler},
			wantSteps: 0,
		},
		{
			name: "operator without operand is dropped",
			rule: Rule{
				BaseRate:  BaseRateTandoor,
				Operator1: op(OperatorAdd),
			},
			wantSteps: 0,
		},
		{
			name: "invalid operator is dropped",
			rule: Rule{
				BaseRate:  BaseRateTandoor,
				Operator1: op(Operator("%")), Value1: val(3),
			},
			wantSteps: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.rule.Formula()
			assert.Equal(t, tt.rule.BaseRate, f.Base)
			assert.Len(t, f.Steps, tt.wantSteps)
		})
	}
}

func TestDefaultChickenRulesCoverStockItems(t *testing.T) {
	node := newTestNode(t)
	rules := DefaultChickenRules(node.Generate(), node)

	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.ItemName)
	}
	assert.ElementsMatch(t, []string{
		"Tandoori", "Boiler", "Egg", "Spl Leg", "Boneless", "Full Leg", "Wings",
	}, names)

	for _, r := range rules {
		assert.True(t, r.BaseRate.Valid())
		assert.NotNil(t, r.Operator1)
		assert.NotNil(t, r.Value1)
	}
}
