package domain

import "errors"

var (
	ErrEquipmentNotFound  = errors.New("equipment not found")
	ErrStepNotFound       = errors.New("cleaning step not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidStatus      = errors.New("invalid equipment status")
)
