package util

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/genc-murat/crystalstream/internal/core/models"
)

// BulkString wraps s as a bulk string argument token.
func BulkString(s string) models.Value {
	return models.Value{Type: "bulk", Bulk: s}
}

// AppendArg serializes one scalar or collection into wire argument
// tokens and appends them to dst. Collections expand to multiple
// tokens; map keys are emitted in sorted order so the token sequence is
// deterministic.
func AppendArg(dst []models.Value, arg interface{}) []models.Value {
	switch v := arg.(type) {
	case models.Value:
		return append(dst, v)
	case string:
		return append(dst, BulkString(v))
	case []byte:
		return append(dst, BulkString(string(v)))
	case int:
		return append(dst, BulkString(strconv.Itoa(v)))
	case int64:
		return append(dst, BulkString(strconv.FormatInt(v, 10)))
	case uint64:
		return append(dst, BulkString(strconv.FormatUint(v, 10)))
	case float64:
		return append(dst, BulkString(strconv.FormatFloat(v, 'f', -1, 64)))
	case []string:
		for _, s := range v {
			dst = append(dst, BulkString(s))
		}
		return dst
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			dst = append(dst, BulkString(k), BulkString(v[k]))
		}
		return dst
	default:
		return append(dst, BulkString(fmt.Sprint(v)))
	}
}

// AppendArgs serializes each arg in order via AppendArg.
func AppendArgs(dst []models.Value, args ...interface{}) []models.Value {
	for _, arg := range args {
		dst = AppendArg(dst, arg)
	}
	return dst
}

// AsString deserializes a wire value into a string.
func AsString(v models.Value) (string, error) {
	switch v.Type {
	case "bulk":
		return v.Bulk, nil
	case "string":
		return v.Str, nil
	case "integer":
		return strconv.FormatInt(v.Num, 10), nil
	default:
		return "", fmt.Errorf("cannot convert %s value to string", v.Type)
	}
}

// AsInt deserializes a wire value into an integer. Textual replies are
// parsed; anything non-numeric is an error.
func AsInt(v models.Value) (int64, error) {
	switch v.Type {
	case "integer":
		return v.Num, nil
	case "bulk":
		return strconv.ParseInt(v.Bulk, 10, 64)
	case "string":
		return strconv.ParseInt(v.Str, 10, 64)
	default:
		return 0, fmt.Errorf("cannot convert %s value to integer", v.Type)
	}
}

// AsArray deserializes a wire value into its element sequence. A null
// reply is a valid empty sequence.
func AsArray(v models.Value) ([]models.Value, error) {
	switch v.Type {
	case "array":
		return v.Array, nil
	case "null":
		return nil, nil
	default:
		return nil, fmt.Errorf("cannot convert %s value to array", v.Type)
	}
}

// AsStringSlice deserializes an array of string-like values.
func AsStringSlice(v models.Value) ([]string, error) {
	arr, err := AsArray(v)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(arr))
	for i, el := range arr {
		s, err := AsString(el)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// AsFieldMap deserializes the array-of-pairs encoding the protocol uses
// in place of maps: a flat array of alternating field name and value.
func AsFieldMap(v models.Value) (map[string]models.Value, error) {
	arr, err := AsArray(v)
	if err != nil {
		return nil, err
	}
	if len(arr)%2 != 0 {
		return nil, fmt.Errorf("field map needs an even element count, got %d", len(arr))
	}
	m := make(map[string]models.Value, len(arr)/2)
	for i := 0; i < len(arr); i += 2 {
		k, err := AsString(arr[i])
		if err != nil {
			return nil, err
		}
		m[k] = arr[i+1]
	}
	return m, nil
}
