package apperror

import "errors"

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrGameNotFound        = errors.New("game not found")
	ErrPlayerAlreadyExists = errors.New("a player with that name already exists")
	ErrInvalidEmail        = errors.New("email address must be valid")
	ErrGameFinished        = errors.New("game is already finished")
	ErrNotYourTurn         = errors.New("it's not your turn")
	ErrNotInGame           = errors.New("player is not part of the game")
	ErrInvalidCell         = errors.New("invalid cell index")
	ErrVersionConflict     = errors.New("game was modified concurrently")
)
