package bench

import (
	"fmt"
	"strings"
)

// Field is one key/value pair of a benchmark document. The driver packages convert a []Field into
// their own ordered document type.
type Field struct {
	Key   string
	Value interface{}
}

func StringDocument() []Field { return []Field{{"name", "String value"}} }

func IntDocument() []Field { return []Field{{"name", 1}} }

// WarmupDocument is inserted and read back by the warm-up loops of the query and update cases.
func WarmupDocument() []Field { return []Field{{"test", "Document"}} }

// StringFieldsDocument returns n fields of the form fieldI: "value I".
func StringFieldsDocument(n int) []Field {
	fields := make([]Field, 0, n)
	for i := 0; i < n; i++ {
		fields = append(fields, Field{fmt.Sprintf("field%d", i), fmt.Sprintf("value %d", i)})
	}
	return fields
}

// IntFieldsDocument returns n fields of the form fieldI: I.
func IntFieldsDocument(n int) []Field {
	fields := make([]Field, 0, n)
	for i := 0; i < n; i++ {
		fields = append(fields, Field{fmt.Sprintf("field%d", i), i})
	}
	return fields
}

// Filler returns a string of size 'x' characters.
func Filler(size int) string { return strings.Repeat("x", size) }
