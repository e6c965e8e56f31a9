package handler

type createEquipmentRequest struct {
	Name        string `json:"name" validate:"required"`
	ClientID    int64  `json:"client_id" validate:"required,gt=0"`
	Description string `json:"description"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=RECEIVED CLEANING FINISHED RETURNED"`
}

type returnEquipmentRequest struct {
	EquipmentID int64  `json:"equipment_id" validate:"required,gt=0"`
	ReturnedBy  int64  `json:"returned_by" validate:"required,gt=0"`
	Comments    string `json:"comments"`
}

type updateStepRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type nextSequenceResponse struct {
	NextID int64  `json:"next_id"`
	Code   string `json:"code"`
}
