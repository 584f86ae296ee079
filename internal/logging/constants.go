package logging

// Standardized field names for structured logging.
// Keep log output filterable by using these instead of ad-hoc keys.
const (
	FieldFile       = "file_path"
	FieldBackupFile = "backup_path"
	FieldDirectory  = "directory"
	FieldOperation  = "operation"
	FieldKind       = "kind"
	FieldRow        = "row"
	FieldRows       = "rows"
	FieldCount      = "count"
	FieldFailed     = "failed"
	FieldDuration   = "duration_ms"
	FieldDelimiter  = "delimiter"
	FieldConvention = "sign_convention"
	FieldReportFile = "report_path"
	FieldConfigFile = "config_file"
	FieldComponent  = "component"
)
