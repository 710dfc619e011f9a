package office

import "errors"

var (
	ErrNoValidLocation = errors.New("no valid office location configured")
)
