package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError is a configuration problem located by file, and by line or key.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: %s %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// yamlLine matches the position yaml.v3 puts in syntax errors.
var yamlLine = regexp.MustCompile(`^yaml: line (\d+)(?:: column (\d+))?: `)

// ValidateYAMLSyntax reports a syntax error in the YAML file at filePath.
// Missing and empty files are valid; they leave the defaults in place.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	err = yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{FilePath: filePath, Message: strings.Join(typeErr.Errors, "; ")}
	}

	ve := &ValidationError{FilePath: filePath, Message: err.Error()}
	if m := yamlLine.FindStringSubmatch(ve.Message); m != nil {
		ve.Line, _ = strconv.Atoi(m[1])
		ve.Column = 1
		if m[2] != "" {
			ve.Column, _ = strconv.Atoi(m[2])
		}
		ve.Message = ve.Message[len(m[0]):]
	}
	return ve
}

// newValidator returns a validator that names fields by their koanf key and
// understands the "regexp" tag.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
		return name
	})
	_ = v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateConfigValues checks the merged configuration against its struct tags.
// Every failing field is reported; each is a *ValidationError.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &ValidationError{
			FilePath: filePath,
			Field:    fieldPath(fe.Namespace()),
			Message:  describeFieldError(fe),
		})
	}
	return errors.Join(errs...)
}

// fieldPath drops the struct name from a validator namespace:
// "Configuration.lint.types[0]" becomes "lint.types[0]".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "regexp":
		return fmt.Sprintf("is not a valid regular expression: %q", fe.Value())
	default:
		return "failed validation: " + fe.Tag()
	}
}
