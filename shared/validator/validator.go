package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"rentdesk/shared/failure"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// Validatable is implemented by request types that carry rules spanning several fields.
type Validatable interface {
	Validate() error
}

// jsonFieldName reports fields by their JSON name so errors match the request body.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// notBlank rejects strings made only of whitespace.
func notBlank(fl val.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}

	return strings.TrimSpace(field.String()) != ""
}

// cents rejects numbers with more than two decimal places, which a
// NUMERIC(_, 2) column would round silently.
func cents(fl val.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Float32 && field.Kind() != reflect.Float64 {
		return true
	}

	_, decimals, found := strings.Cut(strconv.FormatFloat(field.Float(), 'f', -1, 64), ".")

	return !found || len(decimals) <= 2
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	if err := validate.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("cents", cents); err != nil {
		panic(err)
	}

	validate.RegisterAlias("emailorblank", "email|len=0")
}

// Validate decodes a JSON body into data and validates it. Decoding problems
// are bad requests, rule violations are ValidationErrors naming the field.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateStruct runs the tag rules on data, then its own Validate method if it has one.
func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		field, msg := message(err)

		return failure.Validation(field, msg) //nolint:wrapcheck
	}

	if v, ok := any(data).(Validatable); ok {
		return v.Validate() //nolint:wrapcheck
	}

	return nil
}
