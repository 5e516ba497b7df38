package grading

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mesh-intelligence/registers/pkg/types"
)

// ReportFileName is the default grade report file.
const ReportFileName = "grade_report.txt"

// Grades lists the letter grades in report order.
var Grades = []string{"A", "B", "C", "D", "F"}

// Distribution counts students per letter grade. Every grade in Grades is
// present, possibly with zero.
func Distribution(students []types.Student) map[string]int {
	dist := make(map[string]int, len(Grades))
	for _, g := range Grades {
		dist[g] = 0
	}
	for _, s := range students {
		dist[s.Grade()]++
	}
	return dist
}

// WriteReport writes the grade report for students generated at now.
func WriteReport(w io.Writer, students []types.Student, now time.Time) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "=== Student Grade Report ===")
	fmt.Fprintf(bw, "Generated on: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(bw, "============================")
	fmt.Fprintln(bw)

	for _, s := range sortedByID(students) {
		fmt.Fprintln(bw, s.String())
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "============================")
	fmt.Fprintf(bw, "Total Students: %d\n", len(students))

	dist := Distribution(students)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Grade Distribution:")
	for _, g := range Grades {
		fmt.Fprintf(bw, "Grade %s: %d student(s)\n", g, dist[g])
	}

	return bw.Flush()
}

func sortedByID(students []types.Student) []types.Student {
	out := make([]types.Student, len(students))
	copy(out, students)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
