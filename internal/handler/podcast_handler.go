package handler

import (
	"context"
	"net/http"

	"github.com/esuna/esuna-api/internal/model"
)

const (
	// defaultEpisodeLimit はエピソード一覧のデフォルト取得件数。
	defaultEpisodeLimit = 10
	// maxEpisodeLimit はエピソード一覧の最大取得件数。
	maxEpisodeLimit = 50
)

// PodcastServiceInterface はPodcastハンドラーが必要とするサービスインターフェース。
type PodcastServiceInterface interface {
	// FetchEpisodes はフィードURLからエピソード一覧を返す。
	FetchEpisodes(ctx context.Context, feedURL string, limit int) ([]model.PodcastEpisode, error)
}

// PodcastHandler はPodcastのHTTPハンドラー。
type PodcastHandler struct {
	service PodcastServiceInterface
}

// NewPodcastHandler はPodcastHandlerを生成する。
func NewPodcastHandler(service PodcastServiceInterface) *PodcastHandler {
	return &PodcastHandler{service: service}
}

// Episodes はエピソード一覧を取得する。
// GET /api/podcasts/episodes?feed_url=xxx&limit=10
func (h *PodcastHandler) Episodes(w http.ResponseWriter, r *http.Request) {
	feedURL, apiErr := requiredQueryParam(r, "feed_url")
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	limit, apiErr := intQueryParam(r, "limit", defaultEpisodeLimit, 1, maxEpisodeLimit)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	episodes, err := h.service.FetchEpisodes(r.Context(), feedURL, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, episodes)
}
