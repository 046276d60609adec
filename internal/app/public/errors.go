package public

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrGameNotFound    = errors.New("game_not_found")
	ErrJournalDisabled = errors.New("journal_disabled")
)
