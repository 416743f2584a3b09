package rates

import "fmt"

// NetworkError はページの取得（接続・タイムアウト・非2xxステータス）に失敗したことを示します。
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("ページの取得に失敗しました (URL: %s): %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError は想定したページ構造が見つからないことを示します。部分的な結果は返しません。
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ページ構造の解析に失敗しました: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("ページ構造の解析に失敗しました: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RenderError はドキュメントの生成または書き込みに失敗したことを示します。
type RenderError struct {
	Format string // "pdf" または "docx"
	Path   string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%sの生成に失敗しました: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("%sの生成に失敗しました (ファイル: %s): %v", e.Format, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
