package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registers/internal/healthcare"
	"github.com/mesh-intelligence/registers/pkg/types"
)

func newPatientsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Register patients and their prescriptions",
	}
	cmd.AddCommand(
		newPatientsAddCmd(a),
		newPatientsListCmd(a),
		newPatientsPrescribeCmd(a),
		newPatientsPrescriptionsCmd(a),
	)
	return cmd
}

func openHealthcare(ws *workspace, readOnly bool) (*healthcare.System, error) {
	patients, err := backendFor[types.Patient](ws, types.KindPatients)
	if err != nil {
		return nil, err
	}
	prescriptions, err := backendFor[types.Prescription](ws, types.KindPrescriptions)
	if err != nil {
		return nil, err
	}
	s := healthcare.NewSystem(healthcare.Backends{Patients: patients, Prescriptions: prescriptions})
	if readOnly {
		err = ws.loadForRead(s.Load)
	} else {
		err = s.Load()
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newPatientsAddCmd(a *app) *cobra.Command {
	var (
		age    int
		gender string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ws *workspace) error {
				s, err := openHealthcare(ws, false)
				if err != nil {
					return err
				}
				p, err := s.AddPatient(args[0], age, gender)
				if err != nil {
					return err
				}
				if err := s.Save(); err != nil {
					return err
				}
				return a.output(cmd, p, "Added: "+p.String())
			})
		},
	}
	cmd.Flags().IntVar(&age, "age", 0, "age in years")
	cmd.Flags().StringVar(&gender, "gender", "", "gender")
	return cmd
}

func newPatientsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered patients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ws *workspace) error {
				s, err := openHealthcare(ws, true)
				if err != nil {
					return err
				}
				return listOutput(a, cmd, s.Patients(), "No patients registered.")
			})
		},
	}
}

func newPatientsPrescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prescribe <patient-id> <medication>",
		Short: "Issue a prescription to a patient",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, err := parseInt("patient id", args[0])
			if err != nil {
				return err
			}
			return a.withWorkspace(cmd, func(ws *workspace) error {
				s, err := openHealthcare(ws, false)
				if err != nil {
					return err
				}
				rx, err := s.AddPrescription(patientID, args[1], a.now())
				if err != nil {
					return err
				}
				if err := s.Save(); err != nil {
					return err
				}
				return a.output(cmd, rx, "Added: "+rx.String())
			})
		},
	}
}

func newPatientsPrescriptionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prescriptions <patient-id>",
		Short: "List the prescriptions of a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, err := parseInt("patient id", args[0])
			if err != nil {
				return err
			}
			return a.withWorkspace(cmd, func(ws *workspace) error {
				s, err := openHealthcare(ws, true)
				if err != nil {
					return err
				}
				list, err := s.PrescriptionsFor(patientID)
				if err != nil {
					return err
				}
				return listOutput(a, cmd, list, fmt.Sprintf("No prescriptions for patient %d.", patientID))
			})
		},
	}
}
