package rates

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQuote はフランス語圏の表記（"655,957"、"1 234,50" など）を含む気配値を decimal に変換します。
func ParseQuote(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t':
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("気配値が空です")
	}

	// 両方の区切りがある場合は後ろにある方を小数点とみなす
	comma := strings.LastIndex(cleaned, ",")
	dot := strings.LastIndex(cleaned, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case comma >= 0:
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("気配値 %q を数値に変換できません: %w", s, err)
	}
	return d, nil
}

// Quotes は Buy と Sell を数値として返します。変換できない値は nil になります。
func (r RateRow) Quotes() (buy, sell *decimal.Decimal) {
	if d, err := ParseQuote(r.Buy); err == nil {
		buy = &d
	}
	if d, err := ParseQuote(r.Sell); err == nil {
		sell = &d
	}
	return buy, sell
}
