package project

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectEnded    = errors.New("project has ended")
)
