package rates

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateRow(t *testing.T) {
	testCases := []struct {
		name     string
		pair     string
		buy      string
		sell     string
		expected RateRow
	}{
		{
			name:     "登録済みシンボル",
			pair:     "EUR/XAF",
			buy:      "655.96",
			sell:     "657.28",
			expected: RateRow{Code: "290", Symbol: "EUR", Label: "EURO", Buy: "655.96", Sell: "657.28"},
		},
		{
			name:     "分母なしでも同じ結果",
			pair:     "EUR",
			buy:      "655.96",
			sell:     "657.28",
			expected: RateRow{Code: "290", Symbol: "EUR", Label: "EURO", Buy: "655.96", Sell: "657.28"},
		},
		{
			name:     "未登録シンボル",
			pair:     "XYZ",
			buy:      "1.00",
			sell:     "1.01",
			expected: RateRow{Code: "", Symbol: "XYZ", Label: "", Buy: "1.00", Sell: "1.01"},
		},
		{
			name:     "コードが空の登録済みシンボル",
			pair:     "MAD/XAF",
			buy:      "60,12",
			sell:     "60,80",
			expected: RateRow{Code: "", Symbol: "MAD", Label: "DIRHAM MAROCAIN", Buy: "60,12", Sell: "60,80"},
		},
		{
			name:     "シンボルが抽出できない",
			pair:     "eur/xaf",
			buy:      "1",
			sell:     "2",
			expected: RateRow{Buy: "1", Sell: "2"},
		},
		{
			name:     "XAF単独は除去されシンボルなし",
			pair:     "/XAF",
			buy:      "1",
			sell:     "1",
			expected: RateRow{Buy: "1", Sell: "1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NewRateRow(tc.pair, tc.buy, tc.sell))
		})
	}
}

func TestExtractSymbol_Idempotent(t *testing.T) {
	labels := []string{"EUR/XAF", "1 USD/XAF", "Dollar US (USD)", "abc", "CNYX", ""}
	for _, label := range labels {
		first := ExtractSymbol(CleanPairLabel(label))
		second := ExtractSymbol(CleanPairLabel(first))
		assert.Equal(t, first, second, "label=%q", label)
	}
	assert.Equal(t, "USD", ExtractSymbol("1 USD"))
	assert.Equal(t, "CNY", ExtractSymbol("CNYX"))
}

func TestCleanPairLabel(t *testing.T) {
	assert.Equal(t, "EUR", CleanPairLabel("EUR/XAF"))
	assert.Equal(t, "EUR", CleanPairLabel("EUR/XAF/XAF"))
	assert.Equal(t, "XAF", CleanPairLabel("XAF"))
}

func TestLookup(t *testing.T) {
	for _, symbol := range Symbols() {
		c := Lookup(symbol)
		assert.NotEmpty(t, c.Label, symbol)
	}
	assert.Equal(t, Currency{Code: "340", Label: "DOLLAR US"}, Lookup("USD"))
	assert.Equal(t, Currency{Code: "2", Label: "FRANC CFA UEMOA"}, Lookup("XOF"))
	assert.Equal(t, Currency{}, Lookup("XYZ"))
	assert.Equal(t, Currency{}, Lookup(""))
	assert.Len(t, Symbols(), 13)
}

func TestRateRow_Cells(t *testing.T) {
	row := RateRow{Code: "290", Symbol: "EUR", Label: "EURO", Buy: "655.96", Sell: "657.28"}
	cells := row.Cells()
	require.Len(t, cells, len(Columns))
	assert.Equal(t, []string{"290", "EUR", "EURO", "655.96", "657.28"}, cells)
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("boom")

	var netErr *NetworkError
	err := error(&NetworkError{URL: SourceURL, Err: cause})
	assert.True(t, errors.As(err, &netErr))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), SourceURL)

	parseErr := &ParseError{Reason: "コンテナなし"}
	assert.Contains(t, parseErr.Error(), "コンテナなし")
	assert.Nil(t, parseErr.Unwrap())

	renderErr := &RenderError{Format: "pdf", Path: "/tmp/x.pdf", Err: cause}
	assert.ErrorIs(t, renderErr, cause)
	assert.Contains(t, renderErr.Error(), "/tmp/x.pdf")
}
