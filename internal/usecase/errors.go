package usecase

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrJobNotFound        = errors.New("job not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrSkillNotFound      = errors.New("skill not found")
	ErrModelNotReady      = errors.New("fit model not trained yet")
	ErrTrainingInProgress = errors.New("training already in progress")
)
