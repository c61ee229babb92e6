package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the mapped Code for err, or Other when err carries no
// structured database error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into Error, mapping SQLSTATE
// and severity into enums and keeping the original for Unwrap.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// entityNames translates schema identifiers (tables and the stem of foreign
// key columns) into the names clients see.
var entityNames = map[string]string{
	"academias":               "academy",
	"academia":                "academy",
	"federacoes":              "federation",
	"federacao":               "federation",
	"enderecos":               "address",
	"endereco":                "address",
	"telefones":               "phone",
	"telefone":                "phone",
	"redes_sociais":           "social network",
	"rede_social":             "social network",
	"academia_enderecos":      "address",
	"academia_telefones":      "phone",
	"academia_redes_sociais":  "social link",
	"federacao_enderecos":     "address",
	"federacao_telefones":     "phone",
	"federacao_redes_sociais": "social link",
}

var columnLabels = map[string]string{
	"cnpj":           "CNPJ",
	"nome":           "name",
	"sigla":          "acronym",
	"email":          "email",
	"cep":            "postal code",
	"uf":             "state",
	"rede_social_id": "social network",
	"child_id":       "child",
}

// generateErrorCode creates application error codes of the form
// <ENTITY>_<ACTION>, e.g. ACADEMY_ALREADY_EXISTS.
func generateErrorCode(entity string, errType Code) string {
	if entity == "" {
		entity = "record"
	}
	domain := errs.MakeUpperCaseWithUnderscores(entity)

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation, ExclusionViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces a client-facing message for a constraint error.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := humanizeText(getEntityName(sqlErr.TableName, sqlErr.ColumnName))

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", strings.ToLower(entityName))

	case UniqueViolation, ExclusionViolation:
		return fmt.Sprintf("%s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := columnLabel(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		if fieldName := columnLabel(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers the entity an error refers to. A foreign key column
// ("federacao_id") names the referenced entity; otherwise the table does.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		stem := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		if name, ok := entityNames[stem]; ok {
			return name
		}
		return strings.ReplaceAll(stem, "_", " ")
	}

	if tableName != "" {
		if name, ok := entityNames[tableName]; ok {
			return name
		}
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return strings.ReplaceAll(entity, "_", " ")
	}

	return "record"
}

func columnLabel(column string) string {
	if column == "" {
		return ""
	}
	if label, ok := columnLabels[column]; ok {
		return label
	}
	return strings.ReplaceAll(column, "_", " ")
}

// humanizeText converts snake_case identifiers into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeySuffix = regexp.MustCompile(`^[a-z0-9]+_(.+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column behind a unique
// constraint name. Supported conventions:
//
//  1. "unique_<table>_<column>"
//  2. "<table>_<column>_key" (the Postgres default for UNIQUE columns)
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeySuffix.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts any error reaching the HTTP layer into *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - *errs.NotFoundError: 404 with <ENTITY>_NOT_FOUND
//   - *errs.ConstraintViolationError: 400 with a code derived from the SQLSTATE
//   - raw driver errors are classified first
//   - anything else: 500 without leaking details
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	err = Classify("request", err)

	var notFound *errs.NotFoundError
	if errors.As(err, &notFound) {
		entity := notFound.Entity
		if entity == "" {
			return errs.NewNotFoundError("Resource not found", false, nil)
		}
		code := errs.MakeUpperCaseWithUnderscores(entity) + "_NOT_FOUND"
		return errs.NewNotFoundError(fmt.Sprintf("%s not found", humanizeText(entity)), true, &code)
	}

	var violation *errs.ConstraintViolationError
	if errors.As(err, &violation) {
		return violationToHTTP(violation)
	}

	return errs.NewInternalServerError()
}

func violationToHTTP(violation *errs.ConstraintViolationError) *errs.HTTPError {
	sqlErr := &Error{
		Code:           MapCode(violation.SQLState),
		DatabaseCode:   violation.SQLState,
		TableName:      violation.Table,
		ColumnName:     violation.Column,
		ConstraintName: violation.Constraint,
	}

	entity := getEntityName(sqlErr.TableName, sqlErr.ColumnName)
	errorCode := generateErrorCode(entity, sqlErr.Code)
	userMessage := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

	case UniqueViolation, ExclusionViolation:
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			userMessage = strings.ReplaceAll(userMessage, "identifier", columnLabel(column))
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	case NotNullViolation:
		fieldErrors := []errs.FieldError{
			{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			},
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	case CheckViolation:
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	default:
		return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)
	}
}
