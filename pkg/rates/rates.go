package rates

import (
	"regexp"
	"strings"
)

const (
	// SourceURL は為替レート表を公開しているBEACのページです。
	SourceURL = "https://www.beac.int/"

	// DateUnknown は公表日の要素が見つからない場合に使用する代替テキストです。
	DateUnknown = "Date inconnue"

	// LocalCurrencySuffix は通貨ペア表記から除去する自国通貨の分母です。
	LocalCurrencySuffix = "/XAF"
)

// Columns は出力表の列名です。PDF と Word の両方で同じ順序を使用します。
var Columns = []string{"CODE", "SYMBOLE", "INTITULE", "ACHAT", "VENTE"}

var symbolPattern = regexp.MustCompile(`[A-Z]{3}`)

// RateRow は1通貨分の買値・売値の気配です。
// Buy と Sell はページ上の表記のまま保持します。
type RateRow struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
	Buy    string `json:"buy"`
	Sell   string `json:"sell"`
}

// Cells は Columns と同じ順序でセルの値を返します。
func (r RateRow) Cells() []string {
	return []string{r.Code, r.Symbol, r.Label, r.Buy, r.Sell}
}

// RateTable はページ上の出現順に並んだ RateRow の列です（見出し行は除去済み）。
type RateTable []RateRow

// Metadata は公表日と取得元URLを保持します。
type Metadata struct {
	DateSource string `json:"date_source"`
	SourceURL  string `json:"source_url"`
}

// Report は1回のパイプライン実行で生成される表とメタデータの組です。
type Report struct {
	Metadata
	Rows RateTable `json:"rows"`
}

// CleanPairLabel は通貨ペア表記から自国通貨の分母をすべて取り除きます。
func CleanPairLabel(pair string) string {
	return strings.ReplaceAll(pair, LocalCurrencySuffix, "")
}

// ExtractSymbol は表記中で最初に現れる大文字3文字の並びを返します。
// 見つからない場合は空文字列です。
func ExtractSymbol(label string) string {
	return symbolPattern.FindString(label)
}

// NewRateRow は生の通貨ペア表記と買値・売値から RateRow を組み立てます。
func NewRateRow(pair, buy, sell string) RateRow {
	symbol := ExtractSymbol(CleanPairLabel(pair))
	currency := Lookup(symbol)
	return RateRow{
		Code:   currency.Code,
		Symbol: symbol,
		Label:  currency.Label,
		Buy:    buy,
		Sell:   sell,
	}
}
