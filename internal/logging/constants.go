package logging

// Field names shared by every component so log lines can be filtered
// consistently.
const (
	FieldFile       = "file_path"
	FieldParser     = "parser"
	FieldLine       = "line"
	FieldCategory   = "category"
	FieldMerchant   = "merchant"
	FieldStrategy   = "strategy"
	FieldKeyword    = "keyword"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldBatchID    = "batch_id"
	FieldMonth      = "month"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldOutputFile = "output_file"
)
