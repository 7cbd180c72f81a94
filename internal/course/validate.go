package course

import (
	"fmt"
	"strconv"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// NameMinLength is the shortest accepted course name, counted in UTF-16
// code units the way browsers and JS clients measure string length.
const NameMinLength = 3

var (
	validate = newValidator()
	nameRule = fmt.Sprintf("required,min_utf16=%d", NameMinLength)
)

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("min_utf16", minUTF16); err != nil {
		panic(err)
	}
	return v
}

// minUTF16 passes when the string is at least param UTF-16 code units long,
// so a surrogate pair counts as two.
func minUTF16(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(utf16.Encode([]rune(fl.Field().String()))) >= n
}

// Violation describes one failed rule on one field.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result is either a valid Input or a non-empty, ordered list of violations.
type Result struct {
	Input      Input
	Violations []Violation
}

// OK reports whether the body passed validation.
func (r Result) OK() bool { return len(r.Violations) == 0 }

// FirstMessage returns the message of the first violation, or "" when valid.
func (r Result) FirstMessage() string {
	if r.OK() {
		return ""
	}
	return r.Violations[0].Message
}

// Validate checks a decoded request body against the course schema:
// name is required, must be a string and at least NameMinLength characters.
// Fields other than name are ignored.
func Validate(body map[string]any) Result {
	raw, ok := body["name"]
	if !ok || raw == nil {
		return invalid("name", "required", `"name" is required`)
	}
	name, ok := raw.(string)
	if !ok {
		return invalid("name", "string", `"name" must be a string`)
	}

	in := Input{Name: name}
	if err := validate.Var(in.Name, nameRule); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return invalid("name", "invalid", err.Error())
		}
		out := Result{Violations: make([]Violation, 0, len(verrs))}
		for _, fe := range verrs {
			out.Violations = append(out.Violations, violationFor("name", fe))
		}
		return out
	}
	return Result{Input: in}
}

func violationFor(field string, fe validator.FieldError) Violation {
	switch fe.Tag() {
	case "required":
		return Violation{Field: field, Rule: "empty", Message: fmt.Sprintf("%q is not allowed to be empty", field)}
	case "min_utf16":
		return Violation{Field: field, Rule: "min", Message: fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())}
	default:
		return Violation{Field: field, Rule: fe.Tag(), Message: fmt.Sprintf("%q failed on the %s rule", field, fe.Tag())}
	}
}

func invalid(field, rule, msg string) Result {
	return Result{Violations: []Violation{{Field: field, Rule: rule, Message: msg}}}
}
