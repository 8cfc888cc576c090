package training

import "errors"

var (
	ErrInvalidSettings  = errors.New("invalid import settings")
	ErrTrainingNotFound = errors.New("training not found")
)
