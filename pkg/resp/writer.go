package resp

import (
	"bufio"
	"fmt"
	"io"

	"github.com/genc-murat/crystalstream/internal/core/models"
)

type Writer struct {
	wr *bufio.Writer
}

func NewWriter(wr io.Writer) *Writer {
	return &Writer{wr: bufio.NewWriter(wr)}
}

// WriteCommand frames args as the flat array of bulk strings the server
// expects for a request and flushes it.
func (w *Writer) WriteCommand(args ...models.Value) error {
	if err := w.Write(models.Value{Type: "array", Array: args}); err != nil {
		return err
	}
	return w.wr.Flush()
}

func (w *Writer) Write(v models.Value) error {
	switch v.Type {
	case "string":
		return w.writeString(v.Str)
	case "error":
		return w.writeError(v.Str)
	case "integer":
		return w.writeInteger(v.Num)
	case "bulk":
		return w.writeBulk(v.Bulk)
	case "null":
		return w.writeNull()
	case "array":
		return w.writeArray(v.Array)
	default:
		return fmt.Errorf("unknown type: %s", v.Type)
	}
}

// Flush forces any buffered frames onto the wire.
func (w *Writer) Flush() error {
	return w.wr.Flush()
}

func (w *Writer) writeString(s string) error {
	_, err := fmt.Fprintf(w.wr, "+%s\r\n", s)
	return err
}

func (w *Writer) writeError(s string) error {
	_, err := fmt.Fprintf(w.wr, "-%s\r\n", s)
	return err
}

func (w *Writer) writeInteger(i int64) error {
	_, err := fmt.Fprintf(w.wr, ":%d\r\n", i)
	return err
}

func (w *Writer) writeBulk(s string) error {
	_, err := fmt.Fprintf(w.wr, "$%d\r\n%s\r\n", len(s), s)
	return err
}

func (w *Writer) writeNull() error {
	_, err := fmt.Fprintf(w.wr, "$-1\r\n")
	return err
}

func (w *Writer) writeArray(array []models.Value) error {
	if _, err := fmt.Fprintf(w.wr, "*%d\r\n", len(array)); err != nil {
		return err
	}
	for _, value := range array {
		if err := w.Write(value); err != nil {
			return err
		}
	}
	return nil
}
