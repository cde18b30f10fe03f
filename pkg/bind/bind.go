// Package bind decodes and validates an HTTP request body into a struct.
// JSON bodies and HTML form posts are both supported; the storefront's
// customer-info form goes through Form, the fragment-token shim through JSON.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/shakkar/config"
	"github.com/shashiranjanraj/shakkar/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20 // 4 MB
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if len(errs) > 0 {
		return errs, nil
	}
	return nil, nil
}

// Form parses an HTML form post into dest and runs validation. Fields are
// matched by `form` tag first, then by json tag name. Only string, int and
// float64 fields are populated; that covers every form this app renders.
func Form(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	if err = r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind: dest must be a struct pointer")
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Tag.Get("form")
		if name == "" {
			name = jsonName(field)
		}
		if name == "" || !r.PostForm.Has(name) {
			continue
		}

		raw := strings.TrimSpace(r.PostForm.Get(name))
		fv := rv.Field(i)

		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Int, reflect.Int64:
			n, convErr := strconv.ParseInt(raw, 10, 64)
			if convErr == nil {
				fv.SetInt(n)
			}
		case reflect.Float64:
			f, convErr := strconv.ParseFloat(raw, 64)
			if convErr == nil {
				fv.SetFloat(f)
			}
		}
	}

	errs = validate.Struct(dest)
	if len(errs) > 0 {
		return errs, nil
	}
	return nil, nil
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}
