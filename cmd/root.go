package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/noulaye/Scrap-beac/internal/config"
	"github.com/noulaye/Scrap-beac/internal/pipeline"
	"github.com/noulaye/Scrap-beac/pkg/httpclient"
	"github.com/noulaye/Scrap-beac/pkg/rates"
)

// --- グローバル定数 ---

const appName = "scrap-beac"

// flagConfigFile は設定ファイルを指定するフラグ名です。
const flagConfigFile = "config-file"

// --- グローバル変数 ---

var (
	v          = viper.New()
	configFile string
	appConfig  *config.Config
	logger     = slog.Default()
)

// --- 初期化とロジック (clibaseへのコールバックとして利用) ---

// addAppPersistentFlags は、全サブコマンド共通のフラグをルートコマンドに追加し、viper に結び付けます。
// --verbose は clibase が定義します。
func addAppPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, flagConfigFile, "", "設定ファイルのパス (yaml/json/toml)")
	flags.String(config.KeySourceURL, rates.SourceURL, "為替レート表を取得するURL")
	flags.Int(config.KeyTimeout, int(httpclient.DefaultHTTPTimeout.Seconds()), "HTTPリクエストのタイムアウト時間（秒）")
	flags.Int(config.KeyMaxRetries, 0, "HTTPリクエストのリトライ最大回数 (既定は再試行なし)")
	flags.String(config.KeyUserAgent, httpclient.DefaultUserAgent, "送信するUser-Agent")
	flags.String(config.KeyLogo, "", "文書に埋め込むロゴ画像のパス")

	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("フラグのバインドに失敗しました: %v", err))
	}
}

// initAppPreRunE は、clibase共通処理の後に設定を読み込み、ロガーを初期化します。
// clibase.Flags.Verbose はこの関数実行前に設定済みです。
func initAppPreRunE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	cfg.Verbose = cfg.Verbose || clibase.Flags.Verbose

	cfg.SourceURL, err = ensureScheme(cfg.SourceURL)
	if err != nil {
		return fmt.Errorf("URLスキームの処理エラー: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Debug("設定を読み込みました",
		slog.String("url", cfg.SourceURL),
		slog.Duration("timeout", cfg.Timeout),
		slog.Uint64("max_retries", cfg.MaxRetries),
	)
	appConfig = cfg
	return nil
}

// newPipeline は現在の設定から Pipeline を組み立てます。
func newPipeline() (*pipeline.Pipeline, error) {
	if appConfig == nil {
		return nil, errors.New("設定が初期化されていません")
	}
	fetcher := httpclient.New(
		appConfig.Timeout,
		httpclient.WithMaxRetries(appConfig.MaxRetries),
		httpclient.WithUserAgent(appConfig.UserAgent),
	)
	return pipeline.New(fetcher, logger)
}

func init() {
	config.SetDefaults(v)
}

// --- エントリポイント ---

// Execute は clibase を使ってルートコマンドを組み立て、実行します。
// 失敗時の終了処理は clibase.Execute が行います。
func Execute() {
	clibase.Execute(
		appName,
		addAppPersistentFlags,
		initAppPreRunE,
		showCmd,
		exportCmd,
		serveCmd,
	)
}
