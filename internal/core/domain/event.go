package domain

import "time"

// StatusChange is one entry in the equipment audit trail. Notes carries
// free-form context such as the comments attached to a return.
type StatusChange struct {
	EquipmentID int64           `json:"equipment_id" bson:"equipment_id"`
	Status      EquipmentStatus `json:"status" bson:"status"`
	Timestamp   time.Time       `json:"timestamp" bson:"timestamp"`
	Notes       string          `json:"notes,omitempty" bson:"notes,omitempty"`
}
