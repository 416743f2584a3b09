package rates

import "sort"

// Currency はシンボルに対応する数値コードと表示名です。
type Currency struct {
	Code  string
	Label string
}

// currencies は固定の参照表です。実行時に変更してはいけません。
var currencies = map[string]Currency{
	"EUR": {Code: "290", Label: "EURO"},
	"USD": {Code: "340", Label: "DOLLAR US"},
	"GBP": {Code: "260", Label: "LIVRE STERLING"},
	"CHF": {Code: "710", Label: "FRANC SUISSE"},
	"JPY": {Code: "350", Label: "YEN JAPONAIS"},
	"CAD": {Code: "330", Label: "DOLLAR CANADIEN"},
	"SEK": {Code: "310", Label: "COURONNE SUEDOISE"},
	"ZAR": {Code: "360", Label: "RAND SUD-AFRICAIN"},
	"MAD": {Code: "", Label: "DIRHAM MAROCAIN"},
	"SAR": {Code: "602", Label: "RIYAL SAOUDIEN"},
	"AED": {Code: "", Label: "DIRHAM EAU"},
	"DKK": {Code: "", Label: "COURONNE DANOISE"},
	"XOF": {Code: "2", Label: "FRANC CFA UEMOA"},
}

// Lookup はシンボルに対応する Currency を返します。
// 参照表にないシンボルはエラーではなくゼロ値（空のコードと表示名）になります。
func Lookup(symbol string) Currency {
	return currencies[symbol]
}

// Symbols は参照表に登録されているシンボルを昇順で返します。
func Symbols() []string {
	symbols := make([]string, 0, len(currencies))
	for s := range currencies {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}
