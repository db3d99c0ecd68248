// Package hatena ははてなブックマーク連携機能を提供する。
// 人気・新着エントリーのRSS取得とコメントページのスクレイピングを含む。
package hatena

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/esuna/esuna-api/internal/fetch"
	"github.com/esuna/esuna-api/internal/model"
)

const (
	// defaultHotURL は人気エントリーRSSのエンドポイント。
	defaultHotURL = "https://b.hatena.ne.jp/hotentry?mode=rss"
	// defaultLatestURL は新着エントリーRSSのエンドポイント。
	defaultLatestURL = "https://b.hatena.ne.jp/entrylist?mode=rss"
	// source はメトリクスラベル用の取得元名。
	source = "hatena"
)

// SkipRecorder は不正アイテムスキップのメトリクス記録のインターフェース。
type SkipRecorder interface {
	RecordItemSkipped(source string)
}

// Client ははてなブックマークのクライアント。
// RSSエンドポイントからエントリー一覧を、コメントページからコメントを取得する。
type Client struct {
	fetcher   *fetch.Client
	logger    *slog.Logger
	metrics   SkipRecorder // nil許容
	hotURL    string       // テスト用にエンドポイントを差し替え可能
	latestURL string
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(fetcher *fetch.Client, logger *slog.Logger, metrics SkipRecorder) *Client {
	return &Client{
		fetcher:   fetcher,
		logger:    logger,
		metrics:   metrics,
		hotURL:    defaultHotURL,
		latestURL: defaultLatestURL,
	}
}

// FetchHot は人気エントリー一覧を取得する。
func (c *Client) FetchHot(ctx context.Context) ([]model.HatenaEntry, error) {
	return c.fetchEntries(ctx, c.hotURL)
}

// FetchLatest は新着エントリー一覧を取得する。
func (c *Client) FetchLatest(ctx context.Context) ([]model.HatenaEntry, error) {
	return c.fetchEntries(ctx, c.latestURL)
}

// fetchEntries はRSSエンドポイントに1回GETし、エントリー一覧にパースする。
// ドキュメント全体のパース失敗はエラーとし、個別アイテムの欠損はスキップして継続する。
func (c *Client) fetchEntries(ctx context.Context, rssURL string) ([]model.HatenaEntry, error) {
	body, err := c.fetcher.Get(ctx, rssURL, fetch.Options{
		Source: source,
		Accept: "application/rss+xml, application/rdf+xml, application/xml, text/xml, */*",
	})
	if err != nil {
		return nil, err
	}

	parser := gofeed.NewParser()
	feed, err := parser.ParseString(body)
	if err != nil {
		c.logger.Error("はてなRSSのパースに失敗しました",
			slog.String("url", rssURL),
			slog.String("error", err.Error()),
		)
		return nil, model.NewParseFailedError(err.Error())
	}

	entries := make([]model.HatenaEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		// タイトルもリンクもないアイテムは不正としてスキップする
		if item == nil || (item.Title == "" && item.Link == "") {
			c.logger.Warn("不正なRSSアイテムをスキップしました",
				slog.String("url", rssURL),
			)
			c.recordSkip()
			continue
		}

		entries = append(entries, model.HatenaEntry{
			Title:         item.Title,
			Description:   item.Description,
			URL:           item.Link,
			CommentsURL:   extensionValue(item, "bookmarkCommentListPageUrl", "bookmarkcommentlistpageurl"),
			BookmarkCount: parseCount(extensionValue(item, "bookmarkcount")),
		})
	}

	c.logger.Info("はてなエントリーを取得しました",
		slog.String("url", rssURL),
		slog.Int("count", len(entries)),
	)

	return entries, nil
}

// FetchComments は指定されたコメントページURLからコメント一覧を取得する。
// リダイレクトを追跡し、固定の構造セレクターでコメントノードを抽出する。
// セレクターに合致しないフィールドは空文字列となり、両フィールドが空のコメントは破棄される。
func (c *Client) FetchComments(ctx context.Context, pageURL string) ([]model.HatenaComment, error) {
	body, err := c.fetcher.Get(ctx, pageURL, fetch.Options{Source: source})
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		c.logger.Error("コメントページのパースに失敗しました",
			slog.String("url", pageURL),
			slog.String("error", err.Error()),
		)
		return nil, model.NewParseFailedError(err.Error())
	}

	var comments []model.HatenaComment
	doc.Find(".js-bookmarks-recent > .entry-comment-contents").Each(func(_ int, node *goquery.Selection) {
		userName := strings.TrimSpace(node.Find(".entry-comment-username > a").First().Text())
		text := strings.TrimSpace(node.Find(".entry-comment-text").First().Text())

		// 空のコメントは除外
		if userName == "" && text == "" {
			c.recordSkip()
			return
		}

		comments = append(comments, model.HatenaComment{
			UserName: userName,
			Text:     text,
		})
	})

	return comments, nil
}

// extensionValue はgofeedの拡張マップからはてな名前空間のタグ値を引く。
// namesは候補名のリストで、最初に見つかった非空の値を返す。見つからなければ空文字列。
func extensionValue(item *gofeed.Item, names ...string) string {
	exts, ok := item.Extensions["hatena"]
	if !ok {
		return ""
	}
	for _, name := range names {
		if vals, ok := exts[name]; ok && len(vals) > 0 && vals[0].Value != "" {
			return vals[0].Value
		}
	}
	return ""
}

// parseCount はブックマーク数文字列を整数に変換する。
// 欠損・不正値は0として扱う。
func parseCount(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// recordSkip はメトリクスが設定されている場合にスキップを記録する。
func (c *Client) recordSkip() {
	if c.metrics != nil {
		c.metrics.RecordItemSkipped(source)
	}
}
