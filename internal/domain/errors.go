package domain

import "errors"

var (
	ErrOutOfRange          = errors.New("scenario or position out of range")
	ErrParse               = errors.New("malformed context field")
	ErrEmptyCorpus         = errors.New("position has no estimate samples")
	ErrUnreachablePosition = errors.New("position has no neighbour beyond walk distance")
	ErrNoScenarios         = errors.New("no scenarios loaded")
	ErrRecordNotFound      = errors.New("run record not found")
)
