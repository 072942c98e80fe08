package cli

import (
	"errors"

	"github.com/smallbiznis/retailpos/pkg/apperror"
)

// Exit codes by error kind.
const (
	exitInternal          = 1
	exitInvalidInput      = 2
	exitNotFound          = 3
	exitInsufficientStock = 4
	exitEmptyCart         = 5
	exitIOUnavailable     = 6
)

var kindMessages = map[apperror.Kind]string{
	apperror.KindNotFound:          "not found",
	apperror.KindInvalidInput:      "invalid input",
	apperror.KindInsufficientStock: "insufficient stock",
	apperror.KindEmptyCart:         "cart is empty",
	apperror.KindIOUnavailable:     "data file unavailable",
}

func exitCode(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindInvalidInput:
		return exitInvalidInput
	case apperror.KindNotFound:
		return exitNotFound
	case apperror.KindInsufficientStock:
		return exitInsufficientStock
	case apperror.KindEmptyCart:
		return exitEmptyCart
	case apperror.KindIOUnavailable:
		return exitIOUnavailable
	}
	return exitInternal
}

// describe renders err as "<kind message>: <detail>" for the operator.
func describe(err error) string {
	if errors.Is(err, errStartup) {
		return err.Error()
	}
	msg, ok := kindMessages[apperror.KindOf(err)]
	if !ok {
		return err.Error()
	}
	return msg + " (" + err.Error() + ")"
}
