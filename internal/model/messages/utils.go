package messages

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"max.ks1230/converter-bot/internal/model/customerr"
)

const commandParts = 2

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	split := strings.SplitN(text, " ", commandParts)

	if len(split) == commandParts && strings.HasPrefix(split[0], "/") {
		return trimBotName(split[0]), strings.TrimSpace(split[1])
	}
	if strings.HasPrefix(text, "/") {
		return trimBotName(text), ""
	}
	return "", text
}

// trimBotName turns "/convert@some_bot" into "/convert".
func trimBotName(cmd string) string {
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		return cmd[:i]
	}
	return cmd
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// errorMessage turns a failure into the text shown to the user.
func errorMessage(err error) string {
	var missing *customerr.MissingRateError
	switch {
	case errors.Is(err, customerr.ErrNoData):
		return oopsPrefix + noDataMessage
	case errors.Is(err, customerr.ErrWrongStatusCode):
		return oopsPrefix + serverErrorMessage
	case errors.Is(err, customerr.ErrDecoding):
		return oopsPrefix + decodingErrorMessage
	case errors.As(err, &missing):
		return oopsPrefix + fmt.Sprintf(missingRateMessage, missing.Currency)
	case errors.Is(err, customerr.ErrInvalidAmount):
		return incorrectAmountMessage
	case errors.Is(err, customerr.ErrNoConverter):
		return loadingMessage
	default:
		return oopsPrefix + unexpectedErrorMessage
	}
}
