package util

import (
	"reflect"
	"testing"

	"github.com/genc-murat/crystalstream/internal/core/models"
)

func bulks(args []models.Value) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Bulk
	}
	return out
}

func TestAppendArg(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  []string
	}{
		{"string", "hello", []string{"hello"}},
		{"bytes", []byte("raw"), []string{"raw"}},
		{"int", 42, []string{"42"}},
		{"int64", int64(-7), []string{"-7"}},
		{"uint64", uint64(7), []string{"7"}},
		{"float", 3.5, []string{"3.5"}},
		{"string slice expands", []string{"a", "b"}, []string{"a", "b"}},
		{"map expands sorted", map[string]string{"b": "2", "a": "1"}, []string{"a", "1", "b", "2"}},
		{"fallback formats", struct{}{}, []string{"{}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bulks(AppendArg(nil, tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AppendArg(%v) = %v; want %v", tt.input, got, tt.want)
			}
		})
	}

	t.Run("value passthrough", func(t *testing.T) {
		v := models.Value{Type: "bulk", Bulk: "x"}
		got := AppendArg(nil, v)
		if len(got) != 1 || !reflect.DeepEqual(got[0], v) {
			t.Errorf("AppendArg(Value) = %v; want [%v]", got, v)
		}
	})
}

func TestAppendArgs(t *testing.T) {
	got := bulks(AppendArgs(nil, "XADD", "key", []string{"f", "v"}))
	want := []string{"XADD", "key", "f", "v"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AppendArgs() = %v; want %v", got, want)
	}
}

func TestAsString(t *testing.T) {
	tests := []struct {
		name        string
		input       models.Value
		expected    string
		expectError bool
	}{
		{"bulk", models.Value{Type: "bulk", Bulk: "hi"}, "hi", false},
		{"simple string", models.Value{Type: "string", Str: "OK"}, "OK", false},
		{"integer", models.Value{Type: "integer", Num: 12}, "12", false},
		{"null", models.Value{Type: "null"}, "", true},
		{"array", models.Value{Type: "array"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AsString(tt.input)
			if tt.expectError && err == nil {
				t.Errorf("AsString(%v) expected error but got none", tt.input)
			}
			if !tt.expectError && err != nil {
				t.Errorf("AsString(%v) unexpected error: %v", tt.input, err)
			}
			if !tt.expectError && result != tt.expected {
				t.Errorf("AsString(%v) = %s; want %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		name        string
		input       models.Value
		expected    int64
		expectError bool
	}{
		{"integer", models.Value{Type: "integer", Num: 42}, 42, false},
		{"numeric bulk", models.Value{Type: "bulk", Bulk: "-7"}, -7, false},
		{"numeric simple string", models.Value{Type: "string", Str: "9"}, 9, false},
		{"non-numeric bulk", models.Value{Type: "bulk", Bulk: "abc"}, 0, true},
		{"null", models.Value{Type: "null"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AsInt(tt.input)
			if tt.expectError && err == nil {
				t.Errorf("AsInt(%v) expected error but got none", tt.input)
			}
			if !tt.expectError && err != nil {
				t.Errorf("AsInt(%v) unexpected error: %v", tt.input, err)
			}
			if !tt.expectError && result != tt.expected {
				t.Errorf("AsInt(%v) = %d; want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestAsArray(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		arr, err := AsArray(models.Value{Type: "array", Array: []models.Value{{Type: "bulk", Bulk: "a"}}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(arr) != 1 {
			t.Errorf("expected 1 element, got %d", len(arr))
		}
	})

	t.Run("null is an empty sequence", func(t *testing.T) {
		arr, err := AsArray(models.Value{Type: "null"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(arr) != 0 {
			t.Errorf("expected empty, got %d elements", len(arr))
		}
	})

	t.Run("bulk is an error", func(t *testing.T) {
		if _, err := AsArray(models.Value{Type: "bulk", Bulk: "x"}); err == nil {
			t.Error("expected error but got none")
		}
	})
}

func TestAsStringSlice(t *testing.T) {
	v := models.Value{Type: "array", Array: []models.Value{
		{Type: "bulk", Bulk: "a"},
		{Type: "string", Str: "b"},
	}}
	got, err := AsStringSlice(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("AsStringSlice() = %v; want [a b]", got)
	}
}

func TestAsFieldMap(t *testing.T) {
	t.Run("alternating pairs", func(t *testing.T) {
		v := models.Value{Type: "array", Array: []models.Value{
			{Type: "bulk", Bulk: "a"}, {Type: "bulk", Bulk: "1"},
			{Type: "bulk", Bulk: "b"}, {Type: "integer", Num: 2},
		}}
		m, err := AsFieldMap(v)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(m) != 2 {
			t.Fatalf("expected 2 fields, got %d", len(m))
		}
		if m["a"].Bulk != "1" {
			t.Errorf("field a = %v; want bulk 1", m["a"])
		}
		if m["b"].Num != 2 {
			t.Errorf("field b = %v; want integer 2", m["b"])
		}
	})

	t.Run("odd element count is an error", func(t *testing.T) {
		v := models.Value{Type: "array", Array: []models.Value{{Type: "bulk", Bulk: "a"}}}
		if _, err := AsFieldMap(v); err == nil {
			t.Error("expected error but got none")
		}
	})
}
