package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_OnFormat_ShouldUseLocaleSeparators(t *testing.T) {
	en, err := NewFormatter("en", 2)
	require.NoError(t, err)
	de, err := NewFormatter("de", 2)
	require.NoError(t, err)

	assert.Equal(t, "1,234.50", en.Format(1234.5))
	assert.Equal(t, "1.234,50", de.Format(1234.5))
	assert.Equal(t, "11.00", en.Format(11))
	assert.Equal(t, "0.00", en.Format(0))
}

func Test_OnFormat_ShouldRoundToPrecision(t *testing.T) {
	f, err := NewFormatter("en", 3)
	require.NoError(t, err)

	assert.Equal(t, "2.346", f.Format(2.34567))
	assert.Equal(t, "12.000 USD", f.FormatWithCode(12, "USD"))
}

func Test_OnFormat_ShouldReturnPlaceholderForBadValues(t *testing.T) {
	f, err := NewFormatter("fr", 2)
	require.NoError(t, err)

	assert.Equal(t, Placeholder, f.Format(math.NaN()))
	assert.Equal(t, Placeholder, f.Format(math.Inf(1)))
	assert.Equal(t, Placeholder, f.Format(math.Inf(-1)))
}

func Test_OnNewFormatter_ShouldRejectUnknownLocale(t *testing.T) {
	_, err := NewFormatter("not a locale!", 2)
	assert.Error(t, err)
}
