package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/esuna/esuna-api/internal/middleware"
	"github.com/esuna/esuna-api/internal/model"
)

// writeAPIErrorResponse はAPIErrorをJSONレスポンスとして書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case model.ErrCodeNotImplemented:
		return http.StatusNotImplemented
	case model.ErrCodeNowPlayingNotAvailable:
		return http.StatusNotFound
	case model.ErrCodeSSRFBlocked:
		return http.StatusForbidden
	default:
		// FETCH_FAILED、PARSE_FAILEDを含むその他は500
		return http.StatusInternalServerError
	}
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// intQueryParam はクエリパラメータを整数として解釈し、範囲を検証する。
// 未指定の場合はdefaultValを返す。数値でない、または[min, max]の範囲外の
// 場合はINVALID_INPUTエラーを返す。
func intQueryParam(r *http.Request, name string, defaultVal, min, max int) (int, *model.APIError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewInvalidInputError(name + "は整数で指定してください")
	}
	if n < min || n > max {
		return 0, model.NewInvalidInputError(name + "が範囲外です")
	}
	return n, nil
}

// requiredQueryParam は必須クエリパラメータを取得する。
// 未指定の場合はINVALID_INPUTエラーを返す。
func requiredQueryParam(r *http.Request, name string) (string, *model.APIError) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", model.NewInvalidInputError(name + "は必須です")
	}
	return v, nil
}
