package ring

import "errors"

var (
	ErrNodeExists    = errors.New("node already in ring")
	ErrNodeNotFound  = errors.New("node not in ring")
	ErrInvalidWeight = errors.New("weight must be in [0,1]")
	ErrInvalidConfig = errors.New("invalid ring configuration")
)
