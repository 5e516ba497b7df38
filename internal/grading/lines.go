// Package grading keeps student results, reads and writes the
// comma-delimited "ID,Name,Score" student file and produces grade reports.
package grading

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/registers/internal/persist"
	"github.com/mesh-intelligence/registers/pkg/types"
)

// StudentFileName is the default student data file.
const StudentFileName = "students.txt"

const studentFieldCount = 3

// Compile-time check: Lines is a persist codec.
var _ persist.Codec[types.Student] = Lines{}

// Lines is the comma-delimited student codec, one "ID,Name,Score" record per
// line. Names containing commas do not round-trip.
type Lines struct{}

// Encode writes students sorted by ID.
func (Lines) Encode(w io.Writer, students []types.Student) error {
	return WriteStudents(w, students)
}

// Decode parses every non-blank line.
func (Lines) Decode(data []byte) ([]types.Student, error) {
	return ReadStudents(bytes.NewReader(data))
}

// ParseStudentLine parses one record. lineNumber is only used for error
// reporting.
func ParseStudentLine(line string, lineNumber int) (types.Student, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if len(fields) != studentFieldCount {
		return types.Student{}, &types.ParseError{
			Line:   lineNumber,
			Field:  types.FieldCount,
			Reason: fmt.Sprintf("expected %d fields (ID, Name, Score), found %d", studentFieldCount, len(fields)),
		}
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return types.Student{}, &types.ParseError{Line: lineNumber, Field: types.FieldID, Value: fields[0], Reason: "not an integer"}
	}
	if id <= 0 {
		return types.Student{}, &types.ParseError{Line: lineNumber, Field: types.FieldID, Value: fields[0], Reason: "must be positive"}
	}
	if fields[1] == "" {
		return types.Student{}, &types.ParseError{Line: lineNumber, Field: types.FieldName, Reason: "must not be empty"}
	}

	score, err := strconv.Atoi(fields[2])
	if err != nil {
		return types.Student{}, &types.ParseError{Line: lineNumber, Field: types.FieldScore, Value: fields[2], Reason: "not an integer"}
	}
	if score < types.MinScore || score > types.MaxScore {
		return types.Student{}, &types.ParseError{
			Line:   lineNumber,
			Field:  types.FieldScore,
			Value:  fields[2],
			Reason: fmt.Sprintf("score must be between %d and %d", types.MinScore, types.MaxScore),
		}
	}

	return types.Student{ID: id, FullName: fields[1], Score: score}, nil
}

// ReadStudents parses a student file. Blank lines are skipped; the first
// malformed line fails the read.
func ReadStudents(r io.Reader) ([]types.Student, error) {
	var students []types.Student
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s, err := ParseStudentLine(line, lineNumber)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading students: %w: %w", types.ErrIO, err)
	}
	return students, nil
}

// WriteStudents writes one "ID,Name,Score" line per student, sorted by ID.
func WriteStudents(w io.Writer, students []types.Student) error {
	bw := bufio.NewWriter(w)
	for _, s := range sortedByID(students) {
		if _, err := fmt.Fprintf(bw, "%d,%s,%d\n", s.ID, s.FullName, s.Score); err != nil {
			return err
		}
	}
	return bw.Flush()
}
