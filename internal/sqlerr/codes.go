package sqlerr

import (
	"fmt"
	"strings"
)

// Code is a driver-independent category for a database error.
type Code string

const (
	Other                        Code = "other"
	IntegrityConstraintViolation Code = "integrity_constraint_violation"
	RestrictViolation            Code = "restrict_violation"
	NotNullViolation             Code = "not_null_violation"
	ForeignKeyViolation          Code = "foreign_key_violation"
	UniqueViolation              Code = "unique_violation"
	CheckViolation               Code = "check_violation"
	ExclusionViolation           Code = "exclusion_violation"
	StringDataRightTruncation    Code = "string_data_right_truncation"
	NumericValueOutOfRange       Code = "numeric_value_out_of_range"
	InvalidTextRepresentation    Code = "invalid_text_representation"
	InvalidDatetimeFormat        Code = "invalid_datetime_format"
	SerializationFailure         Code = "serialization_failure"
	DeadlockDetected             Code = "deadlock_detected"
	QueryCanceled                Code = "query_canceled"
	ConnectionException          Code = "connection_exception"
	InsufficientPrivilege        Code = "insufficient_privilege"
	UndefinedTable               Code = "undefined_table"
	UndefinedColumn              Code = "undefined_column"
	SyntaxError                  Code = "syntax_error"
)

// StateUniqueViolation is the SQLSTATE of a unique constraint failure.
const StateUniqueViolation = "23505"

var sqlStateCodes = map[string]Code{
	"23000": IntegrityConstraintViolation,
	"23001": RestrictViolation,
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"22001": StringDataRightTruncation,
	"22003": NumericValueOutOfRange,
	"22P02": InvalidTextRepresentation,
	"22007": InvalidDatetimeFormat,
	"40001": SerializationFailure,
	"40P01": DeadlockDetected,
	"57014": QueryCanceled,
	"42501": InsufficientPrivilege,
	"42P01": UndefinedTable,
	"42703": UndefinedColumn,
	"42601": SyntaxError,
}

// MapCode maps a Postgres SQLSTATE to a Code. Unknown states in class 08 map
// to ConnectionException and unknown states in class 23 to
// IntegrityConstraintViolation; anything else is Other.
func MapCode(sqlState string) Code {
	if code, ok := sqlStateCodes[sqlState]; ok {
		return code
	}
	switch {
	case strings.HasPrefix(sqlState, "08"):
		return ConnectionException
	case IsIntegrityViolation(sqlState):
		return IntegrityConstraintViolation
	}
	return Other
}

// IsIntegrityViolation reports whether sqlState belongs to class 23.
func IsIntegrityViolation(sqlState string) bool {
	return len(sqlState) == 5 && strings.HasPrefix(sqlState, "23")
}

// Severity is the severity reported by the server.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
	SeverityUnknown Severity = "UNKNOWN"
)

// MapSeverity normalizes the server severity string.
func MapSeverity(severity string) Severity {
	switch s := Severity(strings.ToUpper(severity)); s {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return s
	}
	return SeverityUnknown
}

// Error is a structured database error. It keeps the driver error for Unwrap.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Severity, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
