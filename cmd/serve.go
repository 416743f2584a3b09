package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/noulaye/Scrap-beac/internal/config"
	"github.com/noulaye/Scrap-beac/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "為替レート表とダウンロード用の文書をHTTPで提供します",
	Long: `GET /api/rates (JSON)、GET /api/rates.pdf、GET /api/rates.docx を提供します。
リクエストごとにページを取得し直し、状態は保持しません。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}

		if !appConfig.Verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := &http.Server{
			Addr:              v.GetString(config.KeyAddr),
			Handler:           server.New(p, appConfig.SourceURL, appConfig.LogoPath, logger).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      overallTimeout() + 5*time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("HTTPサーバーを起動します", slog.String("addr", srv.Addr))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("HTTPサーバーを停止します")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String(config.KeyAddr, ":8080", "待ち受けアドレス")
	if err := v.BindPFlags(serveCmd.Flags()); err != nil {
		panic(fmt.Sprintf("フラグのバインドに失敗しました: %v", err))
	}
}
