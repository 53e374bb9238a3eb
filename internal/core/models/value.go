package models

import "fmt"

// Value is a single RESP protocol value. Type selects which field is
// meaningful: "string" and "error" use Str, "integer" uses Num, "bulk"
// uses Bulk, "array" uses Array, "null" carries nothing.
type Value struct {
	Type  string
	Str   string
	Num   int64
	Bulk  string
	Array []Value
}

func (v Value) String() string {
	switch v.Type {
	case "string":
		return fmt.Sprintf("String: %s", v.Str)
	case "error":
		return fmt.Sprintf("Error: %s", v.Str)
	case "integer":
		return fmt.Sprintf("Integer: %d", v.Num)
	case "bulk":
		return fmt.Sprintf("Bulk: %s", v.Bulk)
	case "null":
		return "Null"
	case "array":
		return fmt.Sprintf("Array: %v", v.Array)
	default:
		return fmt.Sprintf("Unknown Type: %s", v.Type)
	}
}

// IsNull reports whether v is a null bulk or null array reply.
func (v Value) IsNull() bool {
	return v.Type == "null"
}

// IsError reports whether v is a server error reply.
func (v Value) IsError() bool {
	return v.Type == "error"
}
