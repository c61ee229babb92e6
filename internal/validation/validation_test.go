package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addressPayload struct {
	State      string `json:"state" validate:"required,uf"`
	PostalCode string `json:"postalCode" validate:"required,cep"`
}

type payload struct {
	Name      string           `json:"name" validate:"required,min=2"`
	CNPJ      string           `json:"cnpj" validate:"required,cnpj"`
	Addresses []addressPayload `json:"addresses" validate:"dive"`
}

func (p *payload) Validate() error { return Validator().Struct(p) }

func TestIsValidCNPJ(t *testing.T) {
	assert.True(t, IsValidCNPJ("11.222.333/0001-81"))
	assert.True(t, IsValidCNPJ("12345678000195"))
	assert.False(t, IsValidCNPJ("11.222.333/0001-82"))
	assert.False(t, IsValidCNPJ("11111111111111"))
	assert.False(t, IsValidCNPJ("123"))
}

func TestValidatorUsesJSONNamesAndCustomTags(t *testing.T) {
	p := &payload{
		Name:      "A",
		CNPJ:      "11.222.333/0001-82",
		Addresses: []addressPayload{{State: "Pernambuco", PostalCode: "500"}},
	}

	msg, fields := extractValidationError(p.Validate())
	assert.Equal(t, "Validation failed", msg)

	byField := map[string]string{}
	for _, f := range fields {
		byField[f.Field] = f.Error
	}
	assert.Equal(t, map[string]string{
		"name":                    "must be at least 2 characters",
		"cnpj":                    "must be a valid CNPJ",
		"addresses[0].state":      "must be a two-letter state code",
		"addresses[0].postalCode": "must be a valid CEP with 8 digits",
	}, byField)
}

func TestCustomValidationErrors(t *testing.T) {
	_, fields := extractValidationError(CustomValidationErrors{{Field: "socialLinks", Message: "duplicate network"}})
	assert.Equal(t, []errs.FieldError{{Field: "socialLinks", Error: "duplicate network"}}, fields)
}

func TestBindAndValidate(t *testing.T) {
	e := echo.New()

	newContext := func(body string) echo.Context {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return e.NewContext(req, httptest.NewRecorder())
	}

	require.NoError(t, BindAndValidate(newContext(`{"name":"Dojo","cnpj":"11222333000181"}`), &payload{}))

	err := BindAndValidate(newContext(`{"name":`), &payload{})
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, httpErr.Errors)

	err = BindAndValidate(newContext(`{"name":"Dojo"}`), &payload{})
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "cnpj", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestMustRegisterPanicsOnBadTag(t *testing.T) {
	noop := func(validator.FieldLevel) bool { return true }

	assert.Panics(t, func() {
		mustRegister(validator.New(), map[string]validator.Func{"": noop})
	})
	assert.NotPanics(t, func() {
		mustRegister(validator.New(), map[string]validator.Func{"always": noop})
	})
}
