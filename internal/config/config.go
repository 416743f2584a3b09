package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/noulaye/Scrap-beac/pkg/httpclient"
	"github.com/noulaye/Scrap-beac/pkg/rates"
)

// 設定キー。環境変数は SCRAPBEAC_ を前置した大文字表記 (例: SCRAPBEAC_TIMEOUT) で上書きできます。
const (
	KeySourceURL  = "url"
	KeyTimeout    = "timeout"
	KeyMaxRetries = "max-retries"
	KeyUserAgent  = "user-agent"
	KeyVerbose    = "verbose"
	KeyLogo       = "logo"
	KeyPDF        = "pdf"
	KeyDocx       = "docx"
	KeyAddr       = "addr"

	envPrefix  = "SCRAPBEAC"
	dotEnvFile = ".env"
)

// Config はアプリケーションの設定です。
type Config struct {
	SourceURL  string
	Timeout    time.Duration
	MaxRetries uint64
	UserAgent  string
	Verbose    bool
	LogoPath   string
	PDFPath    string
	DocxPath   string
	Addr       string
}

// SetDefaults は v に既定値を登録し、環境変数を読み込むよう設定します。
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySourceURL, rates.SourceURL)
	v.SetDefault(KeyTimeout, int(httpclient.DefaultHTTPTimeout/time.Second))
	v.SetDefault(KeyMaxRetries, 0)
	v.SetDefault(KeyUserAgent, httpclient.DefaultUserAgent)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyLogo, "")
	v.SetDefault(KeyPDF, "taux_beac.pdf")
	v.SetDefault(KeyDocx, "taux_beac.docx")
	v.SetDefault(KeyAddr, ":8080")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load は .env（存在すれば）、設定ファイル、環境変数、フラグの順で設定を解決します。
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました (%s): %w", configFile, err)
		}
	}

	timeoutSec := v.GetInt(KeyTimeout)
	if timeoutSec <= 0 {
		slog.Warn("timeout が不正なため既定値を使用します",
			slog.Int("timeout", timeoutSec),
			slog.Duration("default", httpclient.DefaultHTTPTimeout),
		)
		timeoutSec = int(httpclient.DefaultHTTPTimeout / time.Second)
	}

	maxRetries := v.GetInt(KeyMaxRetries)
	if maxRetries < 0 {
		return nil, fmt.Errorf("max-retries は0以上である必要があります: %d", maxRetries)
	}

	return &Config{
		SourceURL:  v.GetString(KeySourceURL),
		Timeout:    time.Duration(timeoutSec) * time.Second,
		MaxRetries: uint64(maxRetries),
		UserAgent:  v.GetString(KeyUserAgent),
		Verbose:    v.GetBool(KeyVerbose),
		LogoPath:   v.GetString(KeyLogo),
		PDFPath:    v.GetString(KeyPDF),
		DocxPath:   v.GetString(KeyDocx),
		Addr:       v.GetString(KeyAddr),
	}, nil
}

// loadDotEnv は .env を環境変数に読み込みます。ファイルがない場合のみ無視し、書式エラーなどは返します。
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(".env の読み込みに失敗しました (%s): %w", path, err)
	}
	return nil
}
