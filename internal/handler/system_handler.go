package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/esuna/esuna-api/internal/model"
)

const (
	serviceName    = "Esuna API"
	serviceVersion = "0.1.0"
)

// SystemHandler はサービス情報・ヘルスチェック・ログ収集のHTTPハンドラー。
type SystemHandler struct {
	logger *slog.Logger
}

// NewSystemHandler はSystemHandlerを生成する。
func NewSystemHandler(logger *slog.Logger) *SystemHandler {
	return &SystemHandler{logger: logger}
}

// Root はサービス情報を返す。
// GET /
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": serviceName,
		"version": serviceVersion,
		"status":  "running",
	})
}

// Health はヘルスチェックに応答する。
// GET /health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// LogError はフロントエンドからのエラーログを受け取り、サーバーログに記録する。
// POST /api/log
func (h *SystemHandler) LogError(w http.ResponseWriter, r *http.Request) {
	var entry model.ErrorLog
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidInputError("リクエストボディのJSONが不正です"))
		return
	}

	h.logger.Log(r.Context(), logLevelFromString(entry.Level), "Frontend Error",
		slog.String("message", entry.Message),
		slog.String("timestamp", entry.Timestamp),
		slog.String("url", entry.URL),
		slog.String("user_agent", entry.UserAgent),
	)

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged"})
}

// logLevelFromString はログレベル文字列をslogのレベルに変換する。
// 未知のレベルはerrorとして扱う。
func logLevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
