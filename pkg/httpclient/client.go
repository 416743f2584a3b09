package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultHTTPTimeout は1回のGETリクエストに許す最大時間です。
	DefaultHTTPTimeout = 15 * time.Second
	// DefaultUserAgent はブラウザ相当として送信する User-Agent です。
	DefaultUserAgent = httpkit.UserAgent
)

// Doer は *http.Client.Do と互換性のあるインターフェースです。
type Doer = httpkit.Doer

// Client は httpkit.Client をラップし、取得したHTMLを UTF-8 に変換します。
// リトライ回数の既定は 0（再試行なし）です。
type Client struct {
	*httpkit.Client
}

// ClientOption は内部の httpkit.Client に設定を適用する関数型です。
type ClientOption func(*Client)

// WithHTTPClient はカスタムの Doer を設定します。
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) {
		httpkit.WithHTTPClient(doer)(c.Client)
	}
}

// WithMaxRetries は最大リトライ回数を設定します。
func WithMaxRetries(max uint64) ClientOption {
	return func(c *Client) {
		httpkit.WithMaxRetries(max)(c.Client)
	}
}

// WithRetryInterval はリトライ間隔の初期値と上限を設定します。
func WithRetryInterval(initial, max time.Duration) ClientOption {
	return func(c *Client) {
		httpkit.WithInitialInterval(initial)(c.Client)
		httpkit.WithMaxInterval(max)(c.Client)
	}
}

// WithUserAgent は送信する User-Agent を上書きします。空文字列は既定値のままです。
// WithHTTPClient より後に指定した場合、その Doer をラップします。
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua == "" || ua == DefaultUserAgent {
			return
		}
		// 現在の Doer を保持したままヘッダーだけ差し替える
		inner := *c.Client
		httpkit.WithHTTPClient(&userAgentDoer{next: &inner, userAgent: ua})(c.Client)
	}
}

// userAgentDoer は httpkit が設定した User-Agent を送信直前に上書きします。
type userAgentDoer struct {
	next      Doer
	userAgent string
}

func (d *userAgentDoer) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", d.userAgent)
	return d.next.Do(req)
}

// New は新しい Client を生成します。timeout が 0 以下の場合は DefaultHTTPTimeout を使います。
func New(timeout time.Duration, options ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	c := &Client{Client: httpkit.New(timeout, httpkit.WithMaxRetries(0))}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// FetchBytes は URL からコンテンツを取得し、UTF-8 に変換したバイト列を返します。
// 2xx 以外のステータス、タイムアウト、接続エラーはすべてエラーになります。
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	raw, err := c.Client.FetchBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	return DecodeHTML(raw, "")
}

// DecodeHTML は BOM、Content-Type、meta タグの順で文字コードを判定し、UTF-8 に変換します。
// contentType が空の場合は本文のみから判定します。
func DecodeHTML(raw []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return nil, fmt.Errorf("文字コードの判定に失敗しました: %w", err)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("UTF-8への変換に失敗しました: %w", err)
	}
	return decoded, nil
}

// IsNonRetryableError は err がリトライ対象外の 4xx エラーかどうかを判定します。
func IsNonRetryableError(err error) bool {
	return httpkit.IsNonRetryableError(err)
}
