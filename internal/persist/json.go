package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/registers/pkg/types"
)

// JSONArray encodes a snapshot as one indented JSON array of objects.
type JSONArray[T types.Entity] struct{}

// Encode writes items as an indented JSON array. A nil slice is written as [].
func (JSONArray[T]) Encode(w io.Writer, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Decode parses a JSON array. Each element is decoded and validated on its
// own so that a ParseError can point at the line where the element starts.
// Empty input decodes to no items.
func (JSONArray[T]) Decode(data []byte) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, jsonParseError(data, dec.InputOffset(), err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, &types.ParseError{Line: 1, Field: types.FieldRecord, Reason: "expected a JSON array"}
	}

	var items []T
	for dec.More() {
		start := skipSeparators(data, dec.InputOffset())
		var item T
		if err := dec.Decode(&item); err != nil {
			pe := jsonParseError(data, start, err)
			pe.Line = lineAt(data, start)
			return nil, pe
		}
		if err := validate(item); err != nil {
			return nil, &types.ParseError{Line: lineAt(data, start), Field: types.FieldRecord, Reason: err.Error()}
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return nil, jsonParseError(data, dec.InputOffset(), err)
	}
	return items, nil
}

// jsonParseError converts an encoding/json error into a ParseError. Syntax
// and type errors carry their own offsets; anything else is reported at
// fallback.
func jsonParseError(data []byte, fallback int64, err error) *types.ParseError {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return &types.ParseError{Line: lineAt(data, syntaxErr.Offset), Field: types.FieldRecord, Reason: syntaxErr.Error()}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = types.FieldRecord
		}
		return &types.ParseError{
			Line:   lineAt(data, typeErr.Offset),
			Field:  field,
			Reason: fmt.Sprintf("expected %s, found %s", typeErr.Type, typeErr.Value),
		}
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return &types.ParseError{Line: lineAt(data, int64(len(data))), Field: types.FieldRecord, Reason: "unexpected end of input"}
	default:
		return &types.ParseError{Line: lineAt(data, fallback), Field: types.FieldRecord, Reason: err.Error()}
	}
}

// lineAt returns the 1-based line number containing byte offset.
func lineAt(data []byte, offset int64) int {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}
	return bytes.Count(data[:offset], []byte{'\n'}) + 1
}

// skipSeparators advances offset past whitespace and commas so it points at
// the first byte of the next array element.
func skipSeparators(data []byte, offset int64) int64 {
	for offset < int64(len(data)) {
		switch data[offset] {
		case ' ', '\t', '\r', '\n', ',':
			offset++
		default:
			return offset
		}
	}
	return offset
}

type validator interface {
	Validate() error
}

func validate(item any) error {
	if v, ok := item.(validator); ok {
		return v.Validate()
	}
	return nil
}
