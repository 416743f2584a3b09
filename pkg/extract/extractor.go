package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	textUtils "github.com/shouni/go-utils/text"

	"github.com/noulaye/Scrap-beac/pkg/rates"
)

// Extractor は、Fetcher を使ってレート表の取得と解析を管理します。
type Extractor struct {
	fetcher Fetcher
}

// NewExtractor は、新しいExtractorのインスタンスを生成します。
func NewExtractor(fetcher Fetcher) (*Extractor, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("extract.NewExtractor: Fetcher cannot be nil")
	}
	return &Extractor{
		fetcher: fetcher,
	}, nil
}

// ----------------------------------------------------------------------
// 定数定義 (ページ構造)
// ----------------------------------------------------------------------
const (
	rateListSelector  = "div.taux_de_change_list"
	rateEntrySelector = "div.taux_de_change"
	dateSelector      = "div.date_source_taux"

	pairFieldSelector = "div#left"
	buyFieldSelector  = "div#middle"
	sellFieldSelector = "div#right"

	// headerEntries はデータ領域の先頭に埋め込まれた見出し行の数です。
	headerEntries = 1
)

// FetchAndExtract は指定されたURLからページを取得し、レート表とメタデータを抽出します。
func (e *Extractor) FetchAndExtract(ctx context.Context, url string) (*rates.Report, error) {
	htmlBytes, err := e.fetcher.FetchBytes(ctx, url)
	if err != nil {
		return nil, &rates.NetworkError{URL: url, Err: err}
	}
	return Parse(bytes.NewReader(htmlBytes), url)
}

// Parse はHTMLドキュメントからレート表と公表日を抽出します。
// 想定した構造が欠けている場合は *rates.ParseError を返し、部分的な結果は返しません。
func Parse(r io.Reader, sourceURL string) (*rates.Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &rates.ParseError{Reason: "HTML解析に失敗しました", Err: err}
	}

	rows, err := extractRows(doc)
	if err != nil {
		return nil, err
	}

	return &rates.Report{
		Metadata: rates.Metadata{
			DateSource: extractDate(doc),
			SourceURL:  sourceURL,
		},
		Rows: rows,
	}, nil
}

// extractRows はレート一覧の各エントリを読み取り、先頭の見出し行を除いて RateRow に変換します。
func extractRows(doc *goquery.Document) (rates.RateTable, error) {
	list := doc.Find(rateListSelector).First()
	if list.Length() == 0 {
		return nil, &rates.ParseError{Reason: fmt.Sprintf("レート一覧 (%s) が見つかりません", rateListSelector)}
	}

	entries := list.Find(rateEntrySelector)
	if entries.Length() == 0 {
		return nil, &rates.ParseError{Reason: fmt.Sprintf("レートのエントリ (%s) が見つかりません", rateEntrySelector)}
	}

	table := make(rates.RateTable, 0, entries.Length())
	var parseErr error
	entries.EachWithBreak(func(i int, entry *goquery.Selection) bool {
		pair, buy, sell, err := readEntry(i, entry)
		if err != nil {
			parseErr = err
			return false
		}
		if i < headerEntries {
			return true
		}
		table = append(table, rates.NewRateRow(pair, buy, sell))
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return table, nil
}

// readEntry は1エントリから左・中央・右の3つのテキストを読み取ります。
func readEntry(index int, entry *goquery.Selection) (pair, buy, sell string, err error) {
	// 通貨ペアは記号の抽出にのみ使うため空白を正規化する。気配値は前後の空白のみ除く
	fields := []struct {
		selector string
		dest     *string
		clean    func(string) string
	}{
		{pairFieldSelector, &pair, textUtils.NormalizeText},
		{buyFieldSelector, &buy, strings.TrimSpace},
		{sellFieldSelector, &sell, strings.TrimSpace},
	}

	for _, f := range fields {
		s := entry.Find(f.selector).First()
		if s.Length() == 0 {
			return "", "", "", &rates.ParseError{
				Reason: fmt.Sprintf("エントリ %d に %s がありません", index, f.selector),
			}
		}
		*f.dest = f.clean(s.Text())
	}
	return pair, buy, sell, nil
}

// extractDate は公表日のテキストを返します。要素がなければ rates.DateUnknown です。
func extractDate(doc *goquery.Document) string {
	s := doc.Find(dateSelector).First()
	if s.Length() == 0 {
		return rates.DateUnknown
	}
	return strings.TrimSpace(s.Text())
}
