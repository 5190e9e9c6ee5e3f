package maze

import "errors"

var (
	ErrInvalidDimension = errors.New("maze: length and height must be positive")
	ErrIndexOutOfBounds = errors.New("maze: index out of bounds")
	ErrAlreadyGenerated = errors.New("maze: grid is already generated")
	ErrPathNotFound     = errors.New("maze: finish is unreachable from start")
	ErrWallsExhausted   = errors.New("maze: no interior wall left to remove")
	ErrInvalidCount     = errors.New("maze: count must be positive")
	ErrUnresolvedSlot   = errors.New("maze: unresolved slot")
	ErrBrokenLink       = errors.New("maze: link is not reciprocal")
)
