// Package handler はHTTP境界層を提供する。
// クエリパラメータの検証とJSONレスポンスの整形を担い、
// ドメイン処理は各サービスインターフェースに委譲する。
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/esuna/esuna-api/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// メトリクス公開用ハンドラー（promhttp）
	MetricsHandler http.Handler

	// ドメインサービス
	HatenaService  HatenaServiceInterface
	FivechService  FivechServiceInterface
	NovelService   NovelServiceInterface
	PodcastService PodcastServiceInterface
	SNSService     SNSServiceInterface
	RadioService   RadioServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → RequestLogging → Recovery → RateLimit
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewRecoveryMiddleware())
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware())
	}

	systemHandler := NewSystemHandler(deps.Logger)
	hatenaHandler := NewHatenaHandler(deps.HatenaService)
	fivechHandler := NewFivechHandler(deps.FivechService)
	novelHandler := NewNovelHandler(deps.NovelService)
	podcastHandler := NewPodcastHandler(deps.PodcastService)
	snsHandler := NewSNSHandler(deps.SNSService)
	radioHandler := NewRadioHandler(deps.RadioService)

	// サービス情報・ヘルスチェック・ログ収集
	r.Get("/", systemHandler.Root)
	r.Get("/health", systemHandler.Health)
	r.Post("/api/log", systemHandler.LogError)

	// はてなブックマーク
	r.Route("/api/hatena", func(r chi.Router) {
		r.Get("/hot", hatenaHandler.Hot)
		r.Get("/latest", hatenaHandler.Latest)
		r.Get("/comments", hatenaHandler.Comments)
	})

	// 5ch
	r.Route("/api/5ch", func(r chi.Router) {
		r.Get("/boards", fivechHandler.Boards)
		r.Get("/threads", fivechHandler.Threads)
		r.Get("/posts", fivechHandler.Posts)
	})

	// SNS
	r.Get("/api/sns/posts", snsHandler.Posts)

	// 青空文庫
	r.Get("/api/novels/content", novelHandler.Content)

	// Podcast
	r.Get("/api/podcasts/episodes", podcastHandler.Episodes)

	// ラジオ
	r.Route("/api/radio", func(r chi.Router) {
		r.Get("/stream-url/{service}/{station_id}", radioHandler.StreamURL)
		r.Get("/now-playing/{service}/{station_id}", radioHandler.NowPlaying)
	})

	// Prometheusメトリクス
	if deps.MetricsHandler != nil {
		r.Get("/metrics", deps.MetricsHandler.ServeHTTP)
	}

	return r
}
