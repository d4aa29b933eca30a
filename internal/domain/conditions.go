package domain

// CostSource tells where the acquisition cost of an analysis came from
type CostSource string

const (
	CostSourceOverride  CostSource = "override"
	CostSourceCostTable CostSource = "cost_table"
	CostSourceDefault   CostSource = "default"
)

// ConditionCode identifies a reported, non-fatal condition of an analysis
type ConditionCode string

const (
	ConditionEmptyDomain          ConditionCode = "empty_domain"
	ConditionNoProfitableLevel    ConditionCode = "no_profitable_level"
	ConditionNoMatchingCostRecord ConditionCode = "no_matching_cost_record"
	ConditionNoInventoryRecord    ConditionCode = "no_inventory_record"
)

var conditionMessages = map[ConditionCode]string{
	ConditionEmptyDomain:          "no day in the selected range has any demand for this asset",
	ConditionNoProfitableLevel:    "no stocking level earns back the acquisition cost",
	ConditionNoMatchingCostRecord: "asset not found in the cost table, acquisition cost defaulted to 0",
	ConditionNoInventoryRecord:    "asset not found in the inventory table, current inventory is 0",
}

// Condition is a reported condition attached to an analysis
type Condition struct {
	Code    ConditionCode `json:"code"`
	Message string        `json:"message"`
}

// NewCondition builds a Condition with its default message.
func NewCondition(code ConditionCode) Condition {
	msg, ok := conditionMessages[code]
	if !ok {
		msg = string(code)
	}

	return Condition{Code: code, Message: msg}
}
