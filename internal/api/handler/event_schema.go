package handler

import "time"

type stepEventRequest struct {
	EquipmentID int64     `json:"equipment_id" validate:"required,gt=0"`
	StepID      int64     `json:"step_id"      validate:"required,gt=0"`
	Completed   *bool     `json:"completed"    validate:"required"`
	Timestamp   time.Time `json:"timestamp"    validate:"required"`
	Source      string    `json:"source"       validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
