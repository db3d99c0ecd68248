// Package app はアプリケーションの起動・初期化・依存関係のワイヤリングを提供する。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/esuna/esuna-api/internal/aozora"
	"github.com/esuna/esuna-api/internal/config"
	"github.com/esuna/esuna-api/internal/fetch"
	"github.com/esuna/esuna-api/internal/fivech"
	"github.com/esuna/esuna-api/internal/handler"
	"github.com/esuna/esuna-api/internal/hatena"
	"github.com/esuna/esuna-api/internal/logger"
	"github.com/esuna/esuna-api/internal/metrics"
	"github.com/esuna/esuna-api/internal/middleware"
	"github.com/esuna/esuna-api/internal/podcast"
	"github.com/esuna/esuna-api/internal/radio"
	"github.com/esuna/esuna-api/internal/security"
	"github.com/esuna/esuna-api/internal/sns"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8000"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	return runServe(cfg)
}

// runServe はAPIサーバーモードで起動する。
// 全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. セキュリティサービスとメトリクスの初期化
	ssrfGuard := security.NewSSRFGuard()
	extractor := security.NewTextExtractor()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 2. 共有フェッチ層の構築
	// SSRF対策済みHTTPクライアントの上に文字コード変換とサイズ制限を重ねる
	httpClient := ssrfGuard.NewSafeClient(cfg.FetchTimeout, cfg.FetchMaxSize)
	fetcher := fetch.NewClient(httpClient, slog.Default(), ssrfGuard, collector, cfg.UserAgent, cfg.FetchMaxSize)

	// 3. ドメインクライアントの初期化
	hatenaClient := hatena.NewClient(fetcher, slog.Default(), collector)
	fivechClient := fivech.NewClient(fetcher, slog.Default(), collector, cfg.FivechUserAgent)
	aozoraClient := aozora.NewClient(fetcher, slog.Default())
	podcastClient := podcast.NewClient(fetcher, slog.Default(), extractor, collector)
	snsClient := sns.NewClient(fetcher, slog.Default(), extractor)
	radioResolver := radio.NewResolver(slog.Default())

	// 4. ルーターの構築
	rateLimiter := middleware.NewRateLimiter(
		middleware.DefaultRateLimiterConfig(cfg.RateLimitGeneral),
	)
	defer rateLimiter.Stop()

	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            slog.Default(),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		MetricsHandler:    metrics.Handler(registry),

		HatenaService:  hatenaClient,
		FivechService:  fivechClient,
		NovelService:   aozoraClient,
		PodcastService: podcastClient,
		SNSService:     snsClient,
		RadioService:   radioResolver,
	})

	// 5. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
