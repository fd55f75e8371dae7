// Package domain contains markup rule models and the formula structure
// used for expected-rate resolution.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// BaseRate names one of the three raw daily rate categories.
type BaseRate string

const (
	BaseRateTandoor BaseRate = "TandoorRate"
	BaseRateBoiler  BaseRate = "BoilerRate"
	BaseRateEgg     BaseRate = "EggRate"
)

func (b BaseRate) Valid() bool {
	switch b {
	case BaseRateTandoor, BaseRateBoiler, BaseRateEgg:
		return true
	}
	return false
}

// Operator is one of the four arithmetic adjustments a markup step may apply.
type Operator string

const (
	OperatorAdd      Operator = "+"
	OperatorSubtract Operator = "-"
	OperatorMultiply Operator = "*"
	OperatorDivide   Operator = "/"
)

func (o Operator) Valid() bool {
	switch o {
	case OperatorAdd, OperatorSubtract, OperatorMultiply, OperatorDivide:
		return true
	}
	return false
}

// Step is a single operator/operand adjustment applied to the running rate.
type Step struct {
	Operator Operator
	Operand  float64
}

// Formula is the structural form of a markup rule: a base-rate category and
// an ordered sequence of at most two steps. A step only exists when both its
// operator and operand were present on the stored rule, so "absent second
// step" is a length fact rather than a null-check convention.
type Formula struct {
	Base  BaseRate
	Steps []Step
}

// Rule is the persisted markup rule for a (supplier, item) pair. The second
// operator/value pair is optional.
type Rule struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	SupplierID snowflake.ID `gorm:"not null;uniqueIndex:idx_markup_rules_supplier_item" json:"supplier_id"`
	ItemName   string       `gorm:"type:text;not null;uniqueIndex:idx_markup_rules_supplier_item" json:"item_name"`
	BaseRate   BaseRate     `gorm:"column:base_rate_type;type:text;not null" json:"base_rate_type"`
	Operator1  *Operator    `gorm:"type:text" json:"operator1,omitempty"`
	Value1     *float64     `json:"value1,omitempty"`
	Operator2  *Operator    `gorm:"type:text" json:"operator2,omitempty"`
	Value2     *float64     `json:"value2,omitempty"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Rule) TableName() string { return "markup_rules" }

// Formula converts the stored rule into its structural form.
func (r Rule) Formula() Formula {
	f := Formula{Base: r.BaseRate}
	if r.Operator1 != nil && r.Value1 != nil && r.Operator1.Valid() {
		f.Steps = append(f.Steps, Step{Operator: *r.Operator1, Operand: *r.Value1})
	}
	if r.Operator2 != nil && r.Value2 != nil && r.Operator2.Valid() {
		f.Steps = append(f.Steps, Step{Operator: *r.Operator2, Operand: *r.Value2})
	}
	return f
}
