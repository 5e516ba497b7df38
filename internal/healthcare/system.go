// Package healthcare registers patients and the prescriptions issued to
// them.
package healthcare

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/registers/internal/persist"
	"github.com/mesh-intelligence/registers/pkg/store"
	"github.com/mesh-intelligence/registers/pkg/types"
)

// Backends holds the persistence backend of each store.
type Backends struct {
	Patients      persist.Backend[types.Patient]
	Prescriptions persist.Backend[types.Prescription]
}

// System holds the patient and prescription stores plus an index of
// prescriptions by patient ID.
type System struct {
	patients         *store.Store[types.Patient]
	prescriptions    *store.Store[types.Prescription]
	byPatient        map[int][]types.Prescription
	backends         Backends
	nextPatient      int
	nextPrescription int
}

// NewSystem returns an empty system.
func NewSystem(backends Backends) *System {
	return &System{
		patients:         store.New[types.Patient](),
		prescriptions:    store.New[types.Prescription](),
		byPatient:        make(map[int][]types.Prescription),
		backends:         backends,
		nextPatient:      1,
		nextPrescription: 1,
	}
}

// AddPatient registers a patient with the next patient ID.
func (s *System) AddPatient(name string, age int, gender string) (types.Patient, error) {
	p := types.Patient{ID: s.nextPatient, Name: name, Age: age, Gender: gender}
	if err := s.patients.Add(p); err != nil {
		return types.Patient{}, fmt.Errorf("adding patient: %w", err)
	}
	s.nextPatient++
	return p, nil
}

// Patient returns the patient with the given ID.
func (s *System) Patient(id int) (types.Patient, error) {
	return s.patients.Get(id)
}

// Patients returns all patients sorted by ID.
func (s *System) Patients() []types.Patient {
	return s.patients.List()
}

// AddPrescription issues a prescription to an existing patient. Returns
// ErrNotFound when the patient is not registered.
func (s *System) AddPrescription(patientID int, medication string, issued time.Time) (types.Prescription, error) {
	if _, err := s.patients.Get(patientID); err != nil {
		return types.Prescription{}, fmt.Errorf("patient %d: %w", patientID, err)
	}
	rx := types.Prescription{
		ID:             s.nextPrescription,
		PatientID:      patientID,
		MedicationName: medication,
		DateIssued:     issued,
	}
	if err := s.prescriptions.Add(rx); err != nil {
		return types.Prescription{}, fmt.Errorf("adding prescription: %w", err)
	}
	s.byPatient[patientID] = append(s.byPatient[patientID], rx)
	s.nextPrescription++
	return rx, nil
}

// BuildPrescriptionMap rebuilds the patient index from the prescription
// store.
func (s *System) BuildPrescriptionMap() {
	s.byPatient = make(map[int][]types.Prescription)
	for _, rx := range s.prescriptions.List() {
		s.byPatient[rx.PatientID] = append(s.byPatient[rx.PatientID], rx)
	}
}

// PrescriptionsFor returns the prescriptions of a patient in issue order.
// Returns ErrNotFound when the patient is not registered; a registered
// patient without prescriptions yields an empty slice.
func (s *System) PrescriptionsFor(patientID int) ([]types.Prescription, error) {
	if _, err := s.patients.Get(patientID); err != nil {
		return nil, fmt.Errorf("patient %d: %w", patientID, err)
	}
	list := s.byPatient[patientID]
	out := make([]types.Prescription, len(list))
	copy(out, list)
	return out, nil
}

// Save writes both stores.
func (s *System) Save() error {
	if err := persist.SaveStore(s.patients, s.backends.Patients); err != nil {
		return fmt.Errorf("saving patients: %w", err)
	}
	if err := persist.SaveStore(s.prescriptions, s.backends.Prescriptions); err != nil {
		return fmt.Errorf("saving prescriptions: %w", err)
	}
	return nil
}

// Load replaces both stores, rebuilds the prescription index and advances
// the ID sequences.
func (s *System) Load() error {
	if err := persist.LoadStore(s.patients, s.backends.Patients); err != nil {
		return fmt.Errorf("loading patients: %w", err)
	}
	if err := persist.LoadStore(s.prescriptions, s.backends.Prescriptions); err != nil {
		return fmt.Errorf("loading prescriptions: %w", err)
	}
	s.BuildPrescriptionMap()
	s.nextPatient = s.patients.MaxID() + 1
	s.nextPrescription = s.prescriptions.MaxID() + 1
	return nil
}
