package handler

import (
	"context"
	"math"
	"net/http"

	"github.com/esuna/esuna-api/internal/model"
)

const (
	// defaultThreadLimit はスレッド一覧のデフォルト取得件数。
	defaultThreadLimit = 50
	// maxThreadLimit はスレッド一覧の最大取得件数。
	maxThreadLimit = 100
	// defaultPostStart は投稿取得のデフォルト開始レス番号。
	defaultPostStart = 1
	// defaultPostEnd は投稿取得のデフォルト終了レス番号。
	defaultPostEnd = 100
	// maxPostEnd は投稿取得の最大終了レス番号。
	maxPostEnd = 1000
)

// FivechServiceInterface は5chハンドラーが必要とするサービスインターフェース。
type FivechServiceInterface interface {
	// Boards は板一覧を返す。ネットワークアクセスは発生しない。
	Boards() []model.FivechBoard
	// ListThreads は板のスレッド一覧を返す。
	ListThreads(ctx context.Context, boardURL string, limit int) ([]model.FivechThread, error)
	// ListPosts はスレッドの投稿をレス番号範囲で返す。
	ListPosts(ctx context.Context, threadURL string, start, end int) ([]model.FivechPost, error)
}

// FivechHandler は5chのHTTPハンドラー。
type FivechHandler struct {
	service FivechServiceInterface
}

// NewFivechHandler はFivechHandlerを生成する。
func NewFivechHandler(service FivechServiceInterface) *FivechHandler {
	return &FivechHandler{service: service}
}

// Boards は板一覧を取得する。
// GET /api/5ch/boards
func (h *FivechHandler) Boards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Boards())
}

// Threads はスレッド一覧を取得する。
// GET /api/5ch/threads?board_url=xxx&limit=50
func (h *FivechHandler) Threads(w http.ResponseWriter, r *http.Request) {
	boardURL, apiErr := requiredQueryParam(r, "board_url")
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	limit, apiErr := intQueryParam(r, "limit", defaultThreadLimit, 1, maxThreadLimit)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	threads, err := h.service.ListThreads(r.Context(), boardURL, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, threads)
}

// Posts はスレッドの投稿を取得する。
// GET /api/5ch/posts?thread_url=xxx&start=1&end=100
func (h *FivechHandler) Posts(w http.ResponseWriter, r *http.Request) {
	threadURL, apiErr := requiredQueryParam(r, "thread_url")
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	// startに上限はない。範囲外の開始位置は空リストとして返る
	start, apiErr := intQueryParam(r, "start", defaultPostStart, 1, math.MaxInt)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	end, apiErr := intQueryParam(r, "end", defaultPostEnd, 1, maxPostEnd)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	posts, err := h.service.ListPosts(r.Context(), threadURL, start, end)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}
