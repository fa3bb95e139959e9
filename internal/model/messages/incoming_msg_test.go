package messages

import (
	"context"
	"testing"

	"github.com/gojuno/minimock/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/converter-bot/internal/entity/currency"
	"max.ks1230/converter-bot/internal/entity/user"
	"max.ks1230/converter-bot/internal/model/converter"
	"max.ks1230/converter-bot/internal/model/customerr"
	"max.ks1230/converter-bot/internal/model/messages/mock"
	"max.ks1230/converter-bot/internal/model/money"
	"max.ks1230/converter-bot/internal/model/storage"
)

const testUserID = int64(123)

type pairConfig struct{}

func (pairConfig) DefaultPair() (from, to string) { return currency.EUR, currency.USD }

type stubRefresher struct {
	err    error
	holder *converter.Holder
	conv   *converter.Converter
	calls  int
}

func (r *stubRefresher) Refresh(_ context.Context) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	if r.conv != nil {
		r.holder.Offer(uint64(r.calls), r.conv)
	}
	return nil
}

type failingStorage struct{}

func (failingStorage) GetUserByID(context.Context, int64) (user.Record, error) {
	return user.Record{}, errors.New("storage is down")
}

func (failingStorage) SaveUserByID(context.Context, int64, user.Record) error {
	return errors.New("storage is down")
}

type fixture struct {
	holder    *converter.Holder
	refresher *stubRefresher
	storage   userStorage
	catalog   *currency.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := currency.NewCatalog([]currency.Code{currency.EUR, currency.USD, currency.GBP})
	require.NoError(t, err)

	holder := converter.NewHolder()
	return &fixture{
		holder:    holder,
		refresher: &stubRefresher{holder: holder},
		storage:   storage.NewInMemStorage(),
		catalog:   catalog,
	}
}

func (f *fixture) loadRates(t *testing.T) {
	t.Helper()
	conv, err := converter.New(currency.Snapshot{
		Base:  currency.EUR,
		Rates: map[currency.Code]float64{currency.USD: 1.1, currency.GBP: 0.8},
	})
	require.NoError(t, err)
	f.holder.Offer(1, conv)
}

func (f *fixture) service(t *testing.T, sender messageSender) *Service {
	t.Helper()
	formatter, err := money.NewFormatter("en", 2)
	require.NoError(t, err)
	return NewService(sender, f.storage, f.holder, f.refresher, f.catalog, formatter, pairConfig{})
}

func (f *fixture) handler(t *testing.T) *HandlerService {
	t.Helper()
	return f.service(t, nil).handler.(*HandlerService)
}

func Test_OnStartCommand_ShouldAnswerWithIntroMessage(t *testing.T) {
	m := minimock.NewController(t)
	defer m.Finish()
	sender := mock.NewMessageSenderMock(m)

	sender.SendMessageMock.
		Expect(helloMessage+"\n\n"+usageMessage, testUserID).
		Return(nil)

	model := newFixture(t).service(t, sender)
	err := model.HandleIncomingMessage(context.Background(), Message{
		Text:   "/start",
		UserID: testUserID,
	})

	assert.NoError(t, err)
}

func Test_OnUnknownCommand_ShouldAnswerWithHelpMessage(t *testing.T) {
	m := minimock.NewController(t)
	defer m.Finish()
	sender := mock.NewMessageSenderMock(m)

	sender.SendMessageMock.
		Expect("I don't understand you :(", testUserID).
		Return(nil)

	model := newFixture(t).service(t, sender)
	err := model.HandleIncomingMessage(context.Background(), Message{
		Text:   "/none",
		UserID: testUserID,
	})

	assert.NoError(t, err)
}

func Test_OnStorageFailure_ShouldApologiseAndReturnError(t *testing.T) {
	m := minimock.NewController(t)
	defer m.Finish()
	sender := mock.NewMessageSenderMock(m)

	sender.SendMessageMock.
		Expect(sorryPrefix+cannotGetSettingsMessage, testUserID).
		Return(nil)

	f := newFixture(t)
	f.storage = failingStorage{}
	err := f.service(t, sender).HandleIncomingMessage(context.Background(), Message{
		Text:   "/from USD",
		UserID: testUserID,
	})

	assert.Error(t, err)
}

func Test_OnConvertCommand_ShouldUseSelectedPair(t *testing.T) {
	f := newFixture(t)
	f.loadRates(t)
	h := f.handler(t)
	ctx := context.Background()

	resp, err := h.HandleMessage(ctx, "/convert 10", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, "10.00 EUR = 11.00 USD", resp)

	resp, err = h.HandleMessage(ctx, "/convert 1234,5 usd eur", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, "1,234.50 USD = 1,122.27 EUR", resp)

	resp, err = h.HandleMessage(ctx, "/convert@converter_bot 10", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, "10.00 EUR = 11.00 USD", resp)
}

func Test_OnBareAmount_ShouldConvertLikeAForm(t *testing.T) {
	f := newFixture(t)
	f.loadRates(t)
	h := f.handler(t)
	ctx := context.Background()

	_, err := h.HandleMessage(ctx, "/to GBP", testUserID)
	require.NoError(t, err)

	resp, err := h.HandleMessage(ctx, "100", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, "100.00 EUR = 80.00 GBP", resp)

	resp, err = h.HandleMessage(ctx, "how are you", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, loveToTalkMessage, resp)
}

func Test_OnSelectCommands_ShouldAvoidSamePair(t *testing.T) {
	f := newFixture(t)
	h := f.handler(t)
	ctx := context.Background()

	resp, err := h.HandleMessage(ctx, "/from usd", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, "Converting from GBP to USD", resp)

	resp, err = h.HandleMessage(ctx, "/to GBP", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, "Converting from GBP to EUR", resp)

	resp, err = h.HandleMessage(ctx, "/from", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, "Converting from GBP to EUR", resp)

	rec, err := f.storage.GetUserByID(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, user.Record{From: currency.GBP, To: currency.EUR}, rec)
}

func Test_OnUnknownCurrency_ShouldListCatalog(t *testing.T) {
	f := newFixture(t)
	f.loadRates(t)
	h := f.handler(t)
	ctx := context.Background()

	resp, err := h.HandleMessage(ctx, "/from XYZ", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, "Unknown currency XYZ. Available: EUR, USD, GBP", resp)

	resp, err = h.HandleMessage(ctx, "/convert 1 EUR XYZ", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, "Unknown currency XYZ. Available: EUR, USD, GBP", resp)
}

func Test_OnCurrenciesCommand_ShouldShowSelection(t *testing.T) {
	h := newFixture(t).handler(t)

	resp, err := h.HandleMessage(context.Background(), "/currencies", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, "EUR, USD, GBP\n\nConverting from EUR to USD", resp)
}

func Test_OnConvertWithoutRates_ShouldAskToWait(t *testing.T) {
	h := newFixture(t).handler(t)

	resp, err := h.HandleMessage(context.Background(), "/convert 10", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, loadingMessage, resp)
}

func Test_OnConvertWithBadInput(t *testing.T) {
	f := newFixture(t)
	f.loadRates(t)
	h := f.handler(t)
	ctx := context.Background()

	resp, err := h.HandleMessage(ctx, "/convert ten", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, incorrectAmountMessage, resp)

	resp, err = h.HandleMessage(ctx, "/convert -5", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, incorrectAmountMessage, resp)

	resp, err = h.HandleMessage(ctx, "/convert 1 EUR", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, incorrectUsageMessage, resp)
}

func Test_OnConvertWithMissingRate_ShouldNameCurrency(t *testing.T) {
	f := newFixture(t)
	conv, err := converter.New(currency.Snapshot{
		Base:  currency.EUR,
		Rates: map[currency.Code]float64{currency.USD: 1.1},
	})
	require.NoError(t, err)
	f.holder.Offer(1, conv)

	resp, err := f.handler(t).HandleMessage(context.Background(), "/convert 1 EUR GBP", testUserID)
	assert.NoError(t, err)
	assert.Equal(t, "Oops! There is no rate for GBP at the moment.", resp)
}

func Test_OnRefreshCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ok", nil, ratesUpdatedMessage},
		{"no data", errors.Wrap(customerr.ErrNoData, "timeout"), "Oops! There was an error receiving the data."},
		{"status", &customerr.StatusCodeError{Code: 500}, "Oops! There was a server-side error."},
		{"decoding", errors.Wrap(customerr.ErrDecoding, "bad json"), "Oops! There was an error decoding the data."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.refresher.err = tt.err
			h := f.handler(t)

			resp, err := h.HandleMessage(context.Background(), "/refresh", testUserID)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, resp)
			assert.Equal(t, 1, f.refresher.calls)
		})
	}
}

func Test_OnRefreshCommand_ShouldEnableConversion(t *testing.T) {
	f := newFixture(t)
	conv, err := converter.New(currency.Snapshot{
		Base:  currency.EUR,
		Rates: map[currency.Code]float64{currency.USD: 1.5},
	})
	require.NoError(t, err)
	f.refresher.conv = conv
	h := f.handler(t)
	ctx := context.Background()

	resp, _ := h.HandleMessage(ctx, "/convert 2", testUserID)
	assert.Equal(t, loadingMessage, resp)

	resp, _ = h.HandleMessage(ctx, "/refresh", testUserID)
	assert.Equal(t, ratesUpdatedMessage, resp)

	resp, _ = h.HandleMessage(ctx, "/convert 2", testUserID)
	assert.Equal(t, "2.00 EUR = 3.00 USD", resp)
}

func Test_OnParseCommand(t *testing.T) {
	tests := []struct {
		text, cmd, arg string
	}{
		{"/start", "/start", ""},
		{"  /convert 10 EUR USD ", "/convert", "10 EUR USD"},
		{"/refresh@my_bot", "/refresh", ""},
		{"12.5", "", "12.5"},
		{"hello there", "", "hello there"},
	}
	for _, tt := range tests {
		cmd, arg := parseCommand(tt.text)
		assert.Equal(t, tt.cmd, cmd, tt.text)
		assert.Equal(t, tt.arg, arg, tt.text)
	}
}
