// Package fetch は各アダプター共通のHTTPフェッチ層を提供する。
// 文字コード変換（UTF-8自動判定とShift_JIS）をフェッチ段階に隔離し、
// パース処理がエンコーディングを意識せずに済むようにする。
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/esuna/esuna-api/internal/model"
)

// Encoding はレスポンスボディの文字コード変換モードを表す。
type Encoding string

const (
	// EncodingAuto はContent-Typeのcharsetに従って変換する。
	// charset未指定またはISO-8859-1（プレースホルダー）の場合はUTF-8として扱う。
	EncodingAuto Encoding = "auto"
	// EncodingShiftJIS はShift_JIS（cp932）として変換する。
	// 5chおよび青空文庫のレガシーエンコーディング用。
	EncodingShiftJIS Encoding = "shift_jis"
)

// Options は1回のフェッチのオプションを保持する。
type Options struct {
	// Source はメトリクスのラベルに使用する取得元名（hatena, 5ch等）。
	Source string
	// Encoding は文字コード変換モード。ゼロ値はEncodingAuto。
	Encoding Encoding
	// UserAgent は設定時にクライアント既定のUser-Agentを上書きする。
	UserAgent string
	// Accept は設定時にAcceptヘッダーとして送信される。
	Accept string
}

// URLValidator はフェッチ前のURL検証のインターフェース。
// security.SSRFGuardServiceを抽象化してテスタビリティを向上させる。
type URLValidator interface {
	ValidateURL(rawURL string) error
}

// MetricsRecorder はフェッチ結果のメトリクス記録のインターフェース。
type MetricsRecorder interface {
	RecordFetchSuccess(source string)
	RecordFetchFailure(source string)
	RecordFetchLatency(source string, duration time.Duration)
	RecordUpstreamStatus(statusCode int)
}

// Client は各アダプター共通のHTTPフェッチクライアント。
// 注入されたhttp.Client（本番ではSSRF防止付き）でGETを実行し、
// 文字コード変換済みのテキストを返す。リトライは行わない。
type Client struct {
	httpClient  *http.Client
	logger      *slog.Logger
	validator   URLValidator    // nilの場合は検証をスキップ（テスト用）
	metrics     MetricsRecorder // nilの場合は記録をスキップ
	userAgent   string
	maxBodySize int64
}

// NewClient はClientの新しいインスタンスを生成する。
// validatorとmetricsはnilを許容する。
func NewClient(httpClient *http.Client, logger *slog.Logger, validator URLValidator, metrics MetricsRecorder, userAgent string, maxBodySize int64) *Client {
	return &Client{
		httpClient:  httpClient,
		logger:      logger,
		validator:   validator,
		metrics:     metrics,
		userAgent:   userAgent,
		maxBodySize: maxBodySize,
	}
}

// Get は指定URLにGETリクエストを送り、文字コード変換済みのボディを返す。
// リダイレクトはhttp.Clientの既定動作に従って追跡される。
// ネットワークエラーおよび非2xxステータスはFETCH_FAILEDとして返される。
func (c *Client) Get(ctx context.Context, rawURL string, opts Options) (string, error) {
	// SSRF検証（ネットワーク呼び出しの前）
	if c.validator != nil {
		if err := c.validator.ValidateURL(rawURL); err != nil {
			c.logger.Warn("SSRF検証に失敗しました",
				slog.String("url", rawURL),
				slog.String("error", err.Error()),
			)
			return "", model.NewSSRFBlockedError()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", model.NewInvalidURLError(rawURL)
	}

	ua := c.userAgent
	if opts.UserAgent != "" {
		ua = opts.UserAgent
	}
	req.Header.Set("User-Agent", ua)
	if opts.Accept != "" {
		req.Header.Set("Accept", opts.Accept)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(opts.Source)
		c.logger.Error("HTTPリクエストに失敗しました",
			slog.String("source", opts.Source),
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		return "", model.NewFetchFailedError(err.Error())
	}
	defer resp.Body.Close()

	c.recordLatency(opts.Source, time.Since(start))
	c.recordStatus(resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.recordFailure(opts.Source)
		c.logger.Error("上流がエラーステータスを返しました",
			slog.String("source", opts.Source),
			slog.String("url", rawURL),
			slog.Int("http_status", resp.StatusCode),
		)
		return "", model.NewFetchFailedError(fmt.Sprintf("HTTPステータス %d", resp.StatusCode))
	}

	// レスポンスボディを読み込み（最大サイズ制限付き）
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		c.recordFailure(opts.Source)
		return "", model.NewFetchFailedError(fmt.Sprintf("レスポンスの読み取りに失敗: %v", err))
	}

	text, err := decodeBody(body, resp.Header.Get("Content-Type"), opts.Encoding)
	if err != nil {
		c.recordFailure(opts.Source)
		return "", model.NewFetchFailedError(fmt.Sprintf("文字コード変換に失敗: %v", err))
	}

	c.recordSuccess(opts.Source)
	return text, nil
}

// decodeBody はボディを指定モードでUTF-8テキストに変換する。
func decodeBody(body []byte, contentType string, enc Encoding) (string, error) {
	switch enc {
	case EncodingShiftJIS:
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), body)
		if err != nil {
			return "", err
		}
		return string(decoded), nil

	default:
		label := charsetLabel(contentType)
		// charset未指定、ISO-8859-1（サーバーのプレースホルダー値）、
		// UTF-8明示のいずれもそのままUTF-8として扱う
		if label == "" || label == "iso-8859-1" || label == "latin1" || label == "utf-8" {
			return string(body), nil
		}
		r, err := charset.NewReaderLabel(label, strings.NewReader(string(body)))
		if err != nil {
			// 未知のcharsetラベルはUTF-8として扱う
			return string(body), nil
		}
		decoded, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}
}

// charsetLabel はContent-Typeヘッダーからcharsetパラメータを抽出する。
func charsetLabel(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(params["charset"])
}

func (c *Client) recordSuccess(source string) {
	if c.metrics != nil {
		c.metrics.RecordFetchSuccess(source)
	}
}

func (c *Client) recordFailure(source string) {
	if c.metrics != nil {
		c.metrics.RecordFetchFailure(source)
	}
}

func (c *Client) recordLatency(source string, d time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordFetchLatency(source, d)
	}
}

func (c *Client) recordStatus(code int) {
	if c.metrics != nil {
		c.metrics.RecordUpstreamStatus(code)
	}
}
