package handler

import (
	"context"
	"net/http"

	"github.com/esuna/esuna-api/internal/model"
)

// HatenaServiceInterface ははてなブックマークハンドラーが必要とするサービスインターフェース。
type HatenaServiceInterface interface {
	// FetchHot は人気エントリー一覧を返す。
	FetchHot(ctx context.Context) ([]model.HatenaEntry, error)
	// FetchLatest は新着エントリー一覧を返す。
	FetchLatest(ctx context.Context) ([]model.HatenaEntry, error)
	// FetchComments はコメントページURLからコメント一覧を返す。
	FetchComments(ctx context.Context, pageURL string) ([]model.HatenaComment, error)
}

// HatenaHandler ははてなブックマークのHTTPハンドラー。
type HatenaHandler struct {
	service HatenaServiceInterface
}

// NewHatenaHandler はHatenaHandlerを生成する。
func NewHatenaHandler(service HatenaServiceInterface) *HatenaHandler {
	return &HatenaHandler{service: service}
}

// Hot は人気エントリー一覧を取得する。
// GET /api/hatena/hot
func (h *HatenaHandler) Hot(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.FetchHot(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Latest は新着エントリー一覧を取得する。
// GET /api/hatena/latest
func (h *HatenaHandler) Latest(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.FetchLatest(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Comments はコメント一覧を取得する。
// GET /api/hatena/comments?url=xxx
func (h *HatenaHandler) Comments(w http.ResponseWriter, r *http.Request) {
	pageURL, apiErr := requiredQueryParam(r, "url")
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	comments, err := h.service.FetchComments(r.Context(), pageURL)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
