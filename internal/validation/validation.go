// Package validation contains the logic for validating request data.
//
// It uses the `validator` library to enforce rules defined in struct tags,
// registers the document formats used by federation records (CNPJ, UF, CEP)
// and extracts validation errors into a format the client can understand.
package validation
