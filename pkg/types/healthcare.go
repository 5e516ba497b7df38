package types

import (
	"fmt"
	"time"
)

// Patient is a person registered with the healthcare system.
type Patient struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

func (p Patient) EntityID() int { return p.ID }

// Validate reports ErrInvalidValue for an empty name or gender or a
// non-positive age.
func (p Patient) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("patient name must not be empty: %w", ErrInvalidValue)
	}
	if p.Age <= 0 {
		return fmt.Errorf("patient age must be positive, got %d: %w", p.Age, ErrInvalidValue)
	}
	if p.Gender == "" {
		return fmt.Errorf("patient gender must not be empty: %w", ErrInvalidValue)
	}
	return nil
}

func (p Patient) String() string {
	return fmt.Sprintf("ID: %d, Name: %s, Age: %d, Gender: %s", p.ID, p.Name, p.Age, p.Gender)
}

// Prescription is a medication issued to a patient.
type Prescription struct {
	ID             int       `json:"id"`
	PatientID      int       `json:"patient_id"`
	MedicationName string    `json:"medication_name"`
	DateIssued     time.Time `json:"date_issued"`
}

func (p Prescription) EntityID() int { return p.ID }

// Validate reports ErrInvalidValue for an empty medication name or a
// non-positive patient ID.
func (p Prescription) Validate() error {
	if p.PatientID <= 0 {
		return fmt.Errorf("prescription patient id must be positive, got %d: %w", p.PatientID, ErrInvalidValue)
	}
	if p.MedicationName == "" {
		return fmt.Errorf("medication name must not be empty: %w", ErrInvalidValue)
	}
	return nil
}

func (p Prescription) String() string {
	return fmt.Sprintf("ID: %d, Medication: %s, Date Issued: %s",
		p.ID, p.MedicationName, p.DateIssued.Format("2006-01-02"))
}
