// Package sns はSNS（Twitter/X、Mastodon、Bluesky）の投稿取得機能を提供する。
//
// Twitter/X APIは有料のためサンプルデータを返す。Blueskyは未連携。
// Mastodonのみ公開タイムラインを実際に取得し、失敗時はサンプルデータに
// フォールバックする（表示専用機能のため、エラーを呼び出し元に返さない）。
package sns

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/esuna/esuna-api/internal/fetch"
	"github.com/esuna/esuna-api/internal/model"
)

// source はメトリクスラベル用の取得元名。
const source = "sns"

// TextExtractor はHTMLのプレーンテキスト抽出のインターフェース。
type TextExtractor interface {
	ExtractText(rawHTML string) string
}

// Client はSNS投稿のクライアント。
type Client struct {
	fetcher   *fetch.Client
	logger    *slog.Logger
	extractor TextExtractor
	scheme    string // テスト用に差し替え可能（既定はhttps）
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(fetcher *fetch.Client, logger *slog.Logger, extractor TextExtractor) *Client {
	return &Client{
		fetcher:   fetcher,
		logger:    logger,
		extractor: extractor,
		scheme:    "https",
	}
}

// FetchTwitter はTwitter/Xの投稿を取得する。
// APIが有料化されているため、現在はサンプルデータの先頭limit件を返す。
func (c *Client) FetchTwitter(username string, limit int) []model.SNSPost {
	c.logger.Info("Twitter投稿を返します（サンプルデータ）",
		slog.String("username", username),
		slog.Int("limit", limit),
	)
	return sampleData(limit)
}

// mastodonAccount はMastodon APIのアカウント情報。
type mastodonAccount struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// mastodonStatus はMastodon APIの投稿1件。
type mastodonStatus struct {
	Content         string          `json:"content"`
	CreatedAt       string          `json:"created_at"`
	FavouritesCount int             `json:"favourites_count"`
	ReblogsCount    int             `json:"reblogs_count"`
	URL             string          `json:"url"`
	Account         mastodonAccount `json:"account"`
}

// FetchMastodon は指定インスタンスの公開タイムラインを取得する。
// フェッチ・パースのいかなる失敗も回復可能として扱い、
// サンプルデータの先頭limit件を返す。呼び出し元にエラーは返さない。
func (c *Client) FetchMastodon(ctx context.Context, instance string, limit int) []model.SNSPost {
	timelineURL := fmt.Sprintf("%s://%s/api/v1/timelines/public?limit=%d", c.scheme, instance, limit)

	body, err := c.fetcher.Get(ctx, timelineURL, fetch.Options{Source: source})
	if err != nil {
		c.logger.Warn("Mastodonタイムラインの取得に失敗したためサンプルデータを返します",
			slog.String("instance", instance),
			slog.String("error", err.Error()),
		)
		return sampleData(limit)
	}

	var statuses []mastodonStatus
	if err := json.Unmarshal([]byte(body), &statuses); err != nil {
		c.logger.Warn("Mastodonレスポンスのパースに失敗したためサンプルデータを返します",
			slog.String("instance", instance),
			slog.String("error", err.Error()),
		)
		return sampleData(limit)
	}

	now := time.Now()
	posts := make([]model.SNSPost, 0, len(statuses))
	for _, status := range statuses {
		author := status.Account.DisplayName
		if author == "" {
			author = status.Account.Username
		}

		posts = append(posts, model.SNSPost{
			Author:    author,
			Handle:    "@" + status.Account.Username,
			Text:      c.extractor.ExtractText(status.Content),
			Timestamp: FormatRelativeTime(status.CreatedAt, now),
			Likes:     status.FavouritesCount,
			Retweets:  status.ReblogsCount,
			URL:       status.URL,
		})
	}

	return posts
}

// FetchBluesky はBlueskyの投稿を取得する。
// AT Protocol連携が未実装のため、サンプルデータの先頭limit件を返す。
func (c *Client) FetchBluesky(handle string, limit int) []model.SNSPost {
	c.logger.Info("Bluesky連携は未実装のためサンプルデータを返します",
		slog.String("handle", handle),
		slog.Int("limit", limit),
	)
	return sampleData(limit)
}
