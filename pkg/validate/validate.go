// Package validate provides struct-tag validation for form and JSON input.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	phone               digits, spaces, dashes, parens, optional leading +
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gte=N               number >= N
//	lte=N               number <= N
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type CustomerInfo struct {
//	    CustomerName string `json:"customer_name" validate:"required,min=2,max=100"`
//	    Email        string `json:"email"         validate:"required,email"`
//	    Phone        string `json:"phone"         validate:"required,phone"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9()\-\s]{6,20}$`)
)

// Struct validates a struct pointer (or struct) against its `validate` tags.
// The returned map is keyed by the field's json name (or Go name when there
// is no json tag); an empty map means the value is valid.
func Struct(v interface{}) map[string]string {
	errs := map[string]string{}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return errs
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := fieldName(field)
		value := rv.Field(i)

		if msg := checkField(name, value, strings.Split(tag, ",")); msg != "" {
			errs[name] = msg
		}
	}

	return errs
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return f.Name
	}
	return tag
}

func checkField(name string, v reflect.Value, rules []string) string {
	empty := isEmpty(v)

	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}

		key, arg := rule, ""
		if idx := strings.IndexByte(rule, '='); idx >= 0 {
			key, arg = rule[:idx], rule[idx+1:]
		}

		switch key {
		case "required":
			if empty {
				return fmt.Sprintf("The %s field is required.", name)
			}
		case "nullable":
			if empty {
				return ""
			}
		default:
			if empty {
				continue // non-required empty fields skip content rules
			}
			if msg := checkRule(name, v, key, arg); msg != "" {
				return msg
			}
		}
	}

	return ""
}

func checkRule(name string, v reflect.Value, key, arg string) string {
	s := stringValue(v)

	switch key {
	case "email":
		if !emailRe.MatchString(s) {
			return fmt.Sprintf("The %s field must be a valid email address.", name)
		}
	case "phone":
		if !phoneRe.MatchString(s) {
			return fmt.Sprintf("The %s field must be a valid phone number.", name)
		}
	case "numeric":
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", name)
		}
	case "integer":
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", name)
		}
	case "min":
		if n, ok := numericValue(v); ok {
			if limit, _ := strconv.ParseFloat(arg, 64); n < limit {
				return fmt.Sprintf("The %s field must be at least %s.", name, arg)
			}
		} else if limit, _ := strconv.Atoi(arg); len([]rune(s)) < limit {
			return fmt.Sprintf("The %s field must be at least %s characters.", name, arg)
		}
	case "max":
		if n, ok := numericValue(v); ok {
			if limit, _ := strconv.ParseFloat(arg, 64); n > limit {
				return fmt.Sprintf("The %s field must not be greater than %s.", name, arg)
			}
		} else if limit, _ := strconv.Atoi(arg); len([]rune(s)) > limit {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", name, arg)
		}
	case "gte":
		if n, ok := numericValue(v); ok {
			if limit, _ := strconv.ParseFloat(arg, 64); n < limit {
				return fmt.Sprintf("The %s field must be greater than or equal to %s.", name, arg)
			}
		}
	case "lte":
		if n, ok := numericValue(v); ok {
			if limit, _ := strconv.ParseFloat(arg, 64); n > limit {
				return fmt.Sprintf("The %s field must be less than or equal to %s.", name, arg)
			}
		}
	case "in":
		for _, item := range strings.Split(arg, ",") {
			if s == item {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", name)
	}

	return ""
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func stringValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

func numericValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}
