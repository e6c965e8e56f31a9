package domain

import "time"

// EquipmentStatus represents the lifecycle phase of an equipment unit as it
// moves through the receiving → cleaning → sterilization → return workflow.
type EquipmentStatus string

const (
	StatusReceived EquipmentStatus = "RECEIVED"
	StatusCleaning EquipmentStatus = "CLEANING"
	StatusFinished EquipmentStatus = "FINISHED"
	StatusReturned EquipmentStatus = "RETURNED"
)

// allStatuses is the closed set of statuses accepted at the boundary.
var allStatuses = []EquipmentStatus{
	StatusReceived,
	StatusCleaning,
	StatusFinished,
	StatusReturned,
}

// IsValid reports whether s is a member of the status enum. The boundary layer
// rejects anything else before it reaches the lifecycle operations; internal
// paths only ever produce members of the enum.
func (s EquipmentStatus) IsValid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Equipment is the core aggregate root. It exclusively owns its cleaning
// steps: the six default steps are seeded when the equipment is created and
// no step exists without its equipment.
//
// Each phase timestamp is set exactly once, the first time the status moves
// into the corresponding phase. Status writes themselves are unconditional;
// the "set once" guarantee comes from the ≠-current-status guards on the
// timestamp side effects, not from transition validation (the workflow does
// not forbid regressions).
type Equipment struct {
	ID                 int64           `json:"id" bson:"_id"`
	Code               string          `json:"code" bson:"code"`
	Name               string          `json:"name" bson:"name"`
	ClientID           int64           `json:"client_id" bson:"client_id"`
	Description        string          `json:"description,omitempty" bson:"description,omitempty"`
	Status             EquipmentStatus `json:"status" bson:"status"`
	ReceivedAt         time.Time       `json:"received_at" bson:"received_at"`
	CleaningStartedAt  *time.Time      `json:"cleaning_started_at" bson:"cleaning_started_at"`
	CleaningFinishedAt *time.Time      `json:"cleaning_finished_at" bson:"cleaning_finished_at"`
	ReturnedAt         *time.Time      `json:"returned_at" bson:"returned_at"`
	ReturnedBy         *int64          `json:"returned_by" bson:"returned_by"`
}
