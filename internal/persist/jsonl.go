package persist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/mesh-intelligence/registers/pkg/types"
)

// JSONL encodes a snapshot as one JSON object per line.
type JSONL[T types.Entity] struct{}

// Encode writes each item on its own line.
func (JSONL[T]) Encode(w io.Writer, items []T) error {
	bw := bufio.NewWriter(w)
	for _, item := range items {
		rec, err := json.Marshal(item)
		if err != nil {
			return err
		}
		if _, err := bw.Write(rec); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses every non-empty line. The first malformed or invalid line
// fails the whole decode with its line number.
func (JSONL[T]) Decode(data []byte) ([]T, error) {
	var items []T
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			pe := jsonParseError(line, 0, err)
			pe.Line = lineNumber
			return nil, pe
		}
		if err := validate(item); err != nil {
			return nil, &types.ParseError{Line: lineNumber, Field: types.FieldRecord, Reason: err.Error()}
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, &types.ParseError{Line: lineNumber + 1, Field: types.FieldRecord, Reason: err.Error()}
	}
	return items, nil
}
