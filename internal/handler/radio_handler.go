package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/esuna/esuna-api/internal/model"
)

// RadioServiceInterface はラジオハンドラーが必要とするサービスインターフェース。
type RadioServiceInterface interface {
	// ResolveStream はサービスと局IDからストリーム情報を返す。
	ResolveStream(service, stationID string) (*model.StreamInfo, error)
	// ResolveNowPlaying は放送中の番組情報を返す。情報がない場合はnilを返す。
	ResolveNowPlaying(service, stationID string) (*model.NowPlaying, error)
}

// RadioHandler はラジオのHTTPハンドラー。
type RadioHandler struct {
	service RadioServiceInterface
}

// NewRadioHandler はRadioHandlerを生成する。
func NewRadioHandler(service RadioServiceInterface) *RadioHandler {
	return &RadioHandler{service: service}
}

// StreamURL はストリーミングURLを取得する。
// GET /api/radio/stream-url/{service}/{station_id}
func (h *RadioHandler) StreamURL(w http.ResponseWriter, r *http.Request) {
	service := chi.URLParam(r, "service")
	stationID := chi.URLParam(r, "station_id")

	info, err := h.service.ResolveStream(service, stationID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// NowPlaying は放送中の番組情報を取得する。
// GET /api/radio/now-playing/{service}/{station_id}
func (h *RadioHandler) NowPlaying(w http.ResponseWriter, r *http.Request) {
	service := chi.URLParam(r, "service")
	stationID := chi.URLParam(r, "station_id")

	np, err := h.service.ResolveNowPlaying(service, stationID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if np == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewNowPlayingNotAvailableError())
		return
	}
	writeJSON(w, http.StatusOK, np)
}
