package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/esuna/esuna-api/internal/model"
)

const (
	// defaultSNSLimit はSNS投稿のデフォルト取得件数。
	defaultSNSLimit = 10
	// maxSNSLimit はSNS投稿の最大取得件数。
	maxSNSLimit = 50
	// defaultMastodonInstance はインスタンス未指定時のMastodonインスタンス。
	defaultMastodonInstance = "mastodon.social"
)

// SNSServiceInterface はSNSハンドラーが必要とするサービスインターフェース。
type SNSServiceInterface interface {
	// FetchTwitter はTwitter/Xの投稿を返す。
	FetchTwitter(username string, limit int) []model.SNSPost
	// FetchMastodon はMastodonインスタンスの公開タイムラインを返す。
	FetchMastodon(ctx context.Context, instance string, limit int) []model.SNSPost
	// FetchBluesky はBlueskyの投稿を返す。
	FetchBluesky(handle string, limit int) []model.SNSPost
}

// SNSHandler はSNSのHTTPハンドラー。
type SNSHandler struct {
	service SNSServiceInterface
}

// NewSNSHandler はSNSHandlerを生成する。
func NewSNSHandler(service SNSServiceInterface) *SNSHandler {
	return &SNSHandler{service: service}
}

// Posts はSNSの投稿一覧を取得する。
// GET /api/sns/posts?platform=twitter&username=xxx&limit=10
func (h *SNSHandler) Posts(w http.ResponseWriter, r *http.Request) {
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		platform = "twitter"
	}
	username := r.URL.Query().Get("username")

	limit, apiErr := intQueryParam(r, "limit", defaultSNSLimit, 1, maxSNSLimit)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	var posts []model.SNSPost
	switch platform {
	case "twitter":
		posts = h.service.FetchTwitter(username, limit)
	case "mastodon":
		instance := username
		if instance == "" {
			instance = defaultMastodonInstance
		}
		posts = h.service.FetchMastodon(r.Context(), instance, limit)
	case "bluesky":
		posts = h.service.FetchBluesky(username, limit)
	default:
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidInputError(fmt.Sprintf("未対応のプラットフォームです: %s", platform)))
		return
	}

	writeJSON(w, http.StatusOK, posts)
}
