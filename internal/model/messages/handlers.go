package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"max.ks1230/converter-bot/internal/entity/currency"
	"max.ks1230/converter-bot/internal/entity/user"
	"max.ks1230/converter-bot/internal/model/converter"
	"max.ks1230/converter-bot/internal/model/customerr"
)

const (
	dontUnderstandMessage = "I don't understand you :("
	helloMessage          = "Hello! I am the currency converter bot 💱"
	loveToTalkMessage     = "I would love to talk about it more! Send me an amount to convert."
	ratesUpdatedMessage   = "Rates are up to date."

	usageMessage = "/from CODE - currency to convert from\n" +
		"/to CODE - currency to convert to\n" +
		"/convert AMOUNT [FROM TO] - convert an amount\n" +
		"/currencies - supported currencies\n" +
		"/refresh - reload the rates"

	oopsPrefix               = "Oops! "
	noDataMessage            = "There was an error receiving the data."
	serverErrorMessage       = "There was a server-side error."
	decodingErrorMessage     = "There was an error decoding the data."
	loadingMessage           = "Rates are still loading, try /refresh in a moment."
	incorrectAmountMessage   = "The amount is incorrect. Send a positive number like 12.50"
	incorrectUsageMessage    = "That is an incorrect command usage"
	missingRateMessage       = "There is no rate for %s at the moment."
	unknownCurrencyMessage   = "Unknown currency %s. Available: %s"
	cannotGetSettingsMessage = "Can't get your currencies atm. Try later"
	unexpectedErrorMessage   = "Something went wrong."
)

const (
	startCommand      = "/start"
	helpCommand       = "/help"
	currenciesCommand = "/currencies"
	fromCommand       = "/from"
	toCommand         = "/to"
	convertCommand    = "/convert"
	refreshCommand    = "/refresh"
)

type userStorage interface {
	GetUserByID(ctx context.Context, userID int64) (user.Record, error)
	SaveUserByID(ctx context.Context, userID int64, rec user.Record) error
}

type converterSource interface {
	Current() (*converter.Converter, bool)
}

type ratesRefresher interface {
	Refresh(ctx context.Context) error
}

type amountFormatter interface {
	FormatWithCode(v float64, code string) string
}

type config interface {
	DefaultPair() (from, to string)
}

type handler func(ctx context.Context, arg string, userID int64) (string, error)

type handlerMap map[string]handler

type HandlerService struct {
	handlersMap handlerMap
	storage     userStorage
	converters  converterSource
	refresher   ratesRefresher
	catalog     *currency.Catalog
	formatter   amountFormatter
	defaultFrom currency.Code
	defaultTo   currency.Code
}

func newHandler(
	storage userStorage,
	converters converterSource,
	refresher ratesRefresher,
	catalog *currency.Catalog,
	formatter amountFormatter,
	config config,
) *HandlerService {
	from, to := config.DefaultPair()
	res := &HandlerService{
		storage:     storage,
		converters:  converters,
		refresher:   refresher,
		catalog:     catalog,
		formatter:   formatter,
		defaultFrom: from,
		defaultTo:   to,
	}
	res.handlersMap = newMap(res)
	return res
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleStart
	m[helpCommand] = s.handleHelp
	m[currenciesCommand] = s.handleCurrencies
	m[fromCommand] = s.handleFrom
	m[toCommand] = s.handleTo
	m[convertCommand] = s.handleConvert
	m[refreshCommand] = s.handleRefresh

	m[""] = s.handleNoCommand

	return m
}

func (s *HandlerService) HandleMessage(ctx context.Context, text string, userID int64) (string, error) {
	cmd, arg := parseCommand(text)

	span, ctx := opentracing.StartSpanFromContext(ctx, "handleCommand")
	defer span.Finish()
	span.SetTag("command", cmd)

	handler, ok := s.handlersMap[cmd]
	if ok {
		return handler(ctx, arg, userID)
	}
	return dontUnderstandMessage, nil
}

func (s *HandlerService) handleStart(_ context.Context, _ string, _ int64) (string, error) {
	return helloMessage + "\n\n" + usageMessage, nil
}

func (s *HandlerService) handleHelp(_ context.Context, _ string, _ int64) (string, error) {
	return usageMessage, nil
}

func (s *HandlerService) handleCurrencies(ctx context.Context, _ string, userID int64) (string, error) {
	rec, err := s.selection(ctx, userID)
	if err != nil {
		return cannotGetSettingsMessage, errors.Wrap(err, "handle currencies")
	}
	return fmt.Sprintf("%s\n\nConverting from %s to %s",
		strings.Join(s.catalog.Codes(), ", "), rec.From, rec.To), nil
}

func (s *HandlerService) handleFrom(ctx context.Context, arg string, userID int64) (string, error) {
	return s.handleSelect(ctx, arg, userID, (*user.Record).SelectFrom)
}

func (s *HandlerService) handleTo(ctx context.Context, arg string, userID int64) (string, error) {
	return s.handleSelect(ctx, arg, userID, (*user.Record).SelectTo)
}

func (s *HandlerService) handleSelect(
	ctx context.Context,
	arg string,
	userID int64,
	sel func(*user.Record, *currency.Catalog, currency.Code) currency.Code,
) (string, error) {
	rec, err := s.selection(ctx, userID)
	if err != nil {
		return cannotGetSettingsMessage, errors.Wrap(err, "handle select")
	}

	args := strings.Fields(arg)
	if len(args) == 0 {
		return fmt.Sprintf("Converting from %s to %s", rec.From, rec.To), nil
	}
	if len(args) > 1 {
		return incorrectUsageMessage, nil
	}

	code := normalizeCode(args[0])
	if !s.catalog.Contains(code) {
		return s.unknownCurrency(code), nil
	}

	sel(&rec, s.catalog, code)
	if err = s.storage.SaveUserByID(ctx, userID, rec); err != nil {
		return cannotGetSettingsMessage, errors.Wrap(err, "handle select")
	}
	return fmt.Sprintf("Converting from %s to %s", rec.From, rec.To), nil
}

func (s *HandlerService) handleConvert(ctx context.Context, arg string, userID int64) (string, error) {
	args := strings.Fields(arg)
	if len(args) != 1 && len(args) != 3 {
		return incorrectUsageMessage, nil
	}

	rec, err := s.selection(ctx, userID)
	if err != nil {
		return cannotGetSettingsMessage, errors.Wrap(err, "handle convert")
	}
	from, to := rec.From, rec.To
	if len(args) == 3 {
		from, to = normalizeCode(args[1]), normalizeCode(args[2])
		for _, code := range []currency.Code{from, to} {
			if !s.catalog.Contains(code) {
				return s.unknownCurrency(code), nil
			}
		}
	}

	return s.convert(args[0], from, to), nil
}

func (s *HandlerService) handleRefresh(ctx context.Context, _ string, _ int64) (string, error) {
	if err := s.refresher.Refresh(ctx); err != nil {
		return errorMessage(err), nil
	}
	return ratesUpdatedMessage, nil
}

// handleNoCommand treats a bare amount like the amount field of a form.
func (s *HandlerService) handleNoCommand(ctx context.Context, arg string, userID int64) (string, error) {
	if _, err := converter.ParseAmount(arg); err != nil {
		return loveToTalkMessage, nil
	}

	rec, err := s.selection(ctx, userID)
	if err != nil {
		return cannotGetSettingsMessage, errors.Wrap(err, "handle amount")
	}
	return s.convert(arg, rec.From, rec.To), nil
}

func (s *HandlerService) convert(rawAmount string, from, to currency.Code) string {
	amount, err := converter.ParseAmount(rawAmount)
	if err != nil {
		return errorMessage(err)
	}

	conv, ok := s.converters.Current()
	if !ok {
		return errorMessage(customerr.ErrNoConverter)
	}

	res, err := conv.Convert(from, to, amount)
	if err != nil {
		return errorMessage(err)
	}
	return fmt.Sprintf("%s = %s",
		s.formatter.FormatWithCode(amount, from),
		s.formatter.FormatWithCode(res, to))
}

func (s *HandlerService) selection(ctx context.Context, userID int64) (user.Record, error) {
	rec, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return user.Record{}, err
	}
	return rec.WithDefaults(s.catalog, s.defaultFrom, s.defaultTo), nil
}

func (s *HandlerService) unknownCurrency(code currency.Code) string {
	return fmt.Sprintf(unknownCurrencyMessage, code, strings.Join(s.catalog.Codes(), ", "))
}
