package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type UpsertRuleRequest struct {
	ID         string    `json:"id"`
	SupplierID string    `json:"supplier_id"`
	ItemName   string    `json:"item_name"`
	BaseRate   BaseRate  `json:"base_rate_type"`
	Operator1  *Operator `json:"operator1,omitempty"`
	Value1     *float64  `json:"value1,omitempty"`
	Operator2  *Operator `json:"operator2,omitempty"`
	Value2     *float64  `json:"value2,omitempty"`
}

type ListRulesRequest struct {
	SupplierID string `json:"supplier_id"`
}

// Service manages markup rules. Upsert saves directly without an overwrite
// confirmation; bill saves are the confirmed side of that asymmetry.
type Service interface {
	Upsert(ctx context.Context, req UpsertRuleRequest) (*Rule, error)
	List(ctx context.Context, req ListRulesRequest) ([]Rule, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidSupplier = errors.New("invalid_supplier")
	ErrInvalidItemName = errors.New("invalid_item_name")
	ErrInvalidBaseRate = errors.New("invalid_base_rate")
	ErrInvalidOperator = errors.New("invalid_operator")
	ErrInvalidRuleID   = errors.New("invalid_rule_id")
	ErrRuleNotFound    = errors.New("rule_not_found")
	ErrRuleExists      = errors.New("rule_exists")
)

// DefaultChickenRules is the stock rule set seeded for a newly created
// markup-required Chicken supplier.
func DefaultChickenRules(supplierID snowflake.ID, genID *snowflake.Node) []Rule {
	op := func(o Operator) *Operator { return &o }
	val := func(v float64) *float64 { return &v }

	return []Rule{
		{ID: genID.Generate(), SupplierID: supplierID, ItemName: "Tandoori", BaseRate: BaseRateTandoor, Operator1: op(OperatorAdd), Value1: val(20)},
		{ID: genID.Generate(), SupplierID: supplierID, ItemName: "Boiler", BaseRate: BaseRateBoiler, Operator1: op(OperatorAdd), Value1: val(25)},
		{ID: genID.Generate(), SupplierID: supplierID, ItemName: "Egg", BaseRate: BaseRateEgg, Operator1: op(OperatorDivide), Value1: val(10), Operator2: op(OperatorAdd), Value2: val(5)},
		{ID: genID.Generate(), SupplierID: supplierID, ItemName: "Spl Leg", BaseRate: BaseRateTandoor, Operator1: op(OperatorAdd), Value1: val(25)},
		{ID: genID.Generate(), SupplierID: supplierID, ItemName: "Boneless", BaseRate: BaseRateTandoor, Operator1: op(OperatorAdd), Value1: val(95)},
		{ID: genID.Generate(), SupplierID: supplierID, ItemName: "Full Leg", BaseRate: BaseRateTandoor, Operator1: op(OperatorAdd), Value1: val(18)},
		{ID: genID.Generate(), SupplierID: supplierID, ItemName: "Wings", BaseRate: BaseRateTandoor, Operator1: op(OperatorAdd), Value1: val(15)},
	}
}
