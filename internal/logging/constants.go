package logging

// Field names shared by every component so that log output can be filtered
// consistently.
const (
	FieldUser       = "user"
	FieldCurrency   = "currency"
	FieldPosition   = "position"
	FieldDecimals   = "decimal_places"
	FieldAmount     = "amount"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldCount      = "count"
	FieldRow        = "row"
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldDelimiter  = "delimiter"
)
