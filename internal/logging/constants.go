package logging

// Standard field names for structured log output.
const (
	FieldCategory      = "category"
	FieldPeriod        = "period"
	FieldAmount        = "amount"
	FieldTax           = "tax"
	FieldResidual      = "residual"
	FieldRuleSet       = "rule_set"
	FieldRulesFile     = "rules_file"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration"
	FieldCount         = "count"
	FieldFailed        = "failed"
	FieldRow           = "row"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
	FieldCorrelationID = "correlation_id"
	FieldMethod        = "method"
	FieldPath          = "path"
)
