package handler

import (
	"context"
	"net/http"

	"github.com/esuna/esuna-api/internal/model"
)

// NovelServiceInterface は小説ハンドラーが必要とするサービスインターフェース。
type NovelServiceInterface interface {
	// FetchContent は青空文庫の小説本文をセクション分割して返す。
	FetchContent(ctx context.Context, authorID, fileID string) (*model.NovelContent, error)
}

// NovelHandler は小説のHTTPハンドラー。
type NovelHandler struct {
	service NovelServiceInterface
}

// NewNovelHandler はNovelHandlerを生成する。
func NewNovelHandler(service NovelServiceInterface) *NovelHandler {
	return &NovelHandler{service: service}
}

// Content は小説本文を取得する。
// GET /api/novels/content?author_id=000148&file_id=773_14560
func (h *NovelHandler) Content(w http.ResponseWriter, r *http.Request) {
	authorID, apiErr := requiredQueryParam(r, "author_id")
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	fileID, apiErr := requiredQueryParam(r, "file_id")
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	content, err := h.service.FetchContent(r.Context(), authorID, fileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}
