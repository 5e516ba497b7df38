package types

import "fmt"

// Score bounds for a student result.
const (
	MinScore = 0
	MaxScore = 100
)

// Student is a graded student result.
type Student struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Score    int    `json:"score"`
}

func (s Student) EntityID() int { return s.ID }

// Grade maps the score to a letter: 80-100 A, 70-79 B, 60-69 C, 50-59 D,
// anything lower F.
func (s Student) Grade() string {
	switch {
	case s.Score >= 80:
		return "A"
	case s.Score >= 70:
		return "B"
	case s.Score >= 60:
		return "C"
	case s.Score >= 50:
		return "D"
	default:
		return "F"
	}
}

// Validate reports ErrInvalidValue for a non-positive ID, an empty name or a
// score outside MinScore..MaxScore.
func (s Student) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("student id must be positive, got %d: %w", s.ID, ErrInvalidValue)
	}
	if s.FullName == "" {
		return fmt.Errorf("student name must not be empty: %w", ErrInvalidValue)
	}
	if s.Score < MinScore || s.Score > MaxScore {
		return fmt.Errorf("score must be between %d and %d, got %d: %w", MinScore, MaxScore, s.Score, ErrInvalidValue)
	}
	return nil
}

func (s Student) String() string {
	return fmt.Sprintf("%s (ID: %d): Score = %d, Grade = %s", s.FullName, s.ID, s.Score, s.Grade())
}
