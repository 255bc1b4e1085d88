package api

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// Query holds GET parameters. Entries whose value is nil, including typed
// nil pointers, are omitted from the URL entirely.
type Query map[string]any

// Values formats q into url.Values. Pointers are dereferenced; strings,
// booleans and numbers use their canonical text form.
func (q Query) Values() url.Values {
	values := url.Values{}
	for key, v := range q {
		s, ok := formatQueryValue(v)
		if !ok {
			continue
		}
		values.Set(key, s)
	}
	return values
}

func formatQueryValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	default:
		return fmt.Sprint(rv.Interface()), true
	}
}
