package domain

import "time"

// Step names form a fixed ordered vocabulary. Only the first and last steps
// are status-significant: completing StepReceiving moves the equipment to
// CLEANING, completing the full set moves it to FINISHED.
const (
	StepReceiving       = "Receiving"
	StepInitialTriage   = "Initial Triage"
	StepBasicCleaning   = "Basic Cleaning"
	StepDeepCleaning    = "Deep Cleaning"
	StepSterilization   = "Sterilization"
	StepFinalInspection = "Final Inspection"
)

// DefaultStepNames is the six-step checklist seeded for every equipment unit,
// in workflow order.
func DefaultStepNames() []string {
	return []string{
		StepReceiving,
		StepInitialTriage,
		StepBasicCleaning,
		StepDeepCleaning,
		StepSterilization,
		StepFinalInspection,
	}
}

// CleaningStep is one checklist item belonging to exactly one equipment unit.
// CompletedAt is non-nil iff Completed is true: marking a step incomplete
// clears the timestamp again.
type CleaningStep struct {
	ID          int64      `json:"id" bson:"_id"`
	EquipmentID int64      `json:"equipment_id" bson:"equipment_id"`
	Step        string     `json:"step" bson:"step"`
	Completed   bool       `json:"completed" bson:"completed"`
	CompletedAt *time.Time `json:"completed_at" bson:"completed_at"`
}
