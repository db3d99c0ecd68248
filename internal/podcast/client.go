// Package podcast はPodcast RSS/Atomフィードからのエピソード取得機能を提供する。
package podcast

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"

	"github.com/esuna/esuna-api/internal/fetch"
	"github.com/esuna/esuna-api/internal/model"
)

const (
	// maxDescriptionLength は説明文の最大文字数。超過分は切り詰める。
	maxDescriptionLength = 300
	// untitledPlaceholder はタイトルが抽出できないエピソードのプレースホルダー。
	untitledPlaceholder = "不明"
	// source はメトリクスラベル用の取得元名。
	source = "podcast"
)

// TextExtractor はHTMLのプレーンテキスト抽出のインターフェース。
// security.TextExtractorServiceを抽象化してテスタビリティを向上させる。
type TextExtractor interface {
	ExtractText(rawHTML string) string
}

// SkipRecorder は不正アイテムスキップのメトリクス記録のインターフェース。
type SkipRecorder interface {
	RecordItemSkipped(source string)
}

// Client はPodcastフィードのクライアント。
// RSS 2.0とAtomの両方に対応し、フィードのスキーマに応じて抽出処理を分岐する。
type Client struct {
	fetcher   *fetch.Client
	logger    *slog.Logger
	extractor TextExtractor
	metrics   SkipRecorder // nil許容
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(fetcher *fetch.Client, logger *slog.Logger, extractor TextExtractor, metrics SkipRecorder) *Client {
	return &Client{
		fetcher:   fetcher,
		logger:    logger,
		extractor: extractor,
		metrics:   metrics,
	}
}

// FetchEpisodes は指定されたフィードURLから最大limit件のエピソードを取得する。
// リダイレクトを追跡し、charset未指定またはISO-8859-1報告時はUTF-8として扱う。
// フィード全体のパース失敗はエラーとなる。アイテム順はフィードの文書順を保つ。
func (c *Client) FetchEpisodes(ctx context.Context, feedURL string, limit int) ([]model.PodcastEpisode, error) {
	body, err := c.fetcher.Get(ctx, feedURL, fetch.Options{
		Source: source,
		Accept: "application/rss+xml, application/atom+xml, application/xml, text/xml, */*",
	})
	if err != nil {
		return nil, err
	}

	// Atomはlink要素のrel/type属性を保持する専用パーサーで処理する
	if gofeed.DetectFeedType(strings.NewReader(body)) == gofeed.FeedTypeAtom {
		return c.atomEpisodes(body, feedURL, limit)
	}

	parser := gofeed.NewParser()
	feed, err := parser.ParseString(body)
	if err != nil {
		c.logger.Error("Podcastフィードのパースに失敗しました",
			slog.String("feed_url", feedURL),
			slog.String("error", err.Error()),
		)
		return nil, model.NewParseFailedError(err.Error())
	}

	items := feed.Items
	if len(items) > limit {
		items = items[:limit]
	}

	episodes := make([]model.PodcastEpisode, 0, len(items))
	for i, item := range items {
		if item == nil {
			c.recordSkip()
			continue
		}

		title := c.extractor.ExtractText(item.Title)
		if title == "" {
			title = untitledPlaceholder
		}

		episode := model.PodcastEpisode{
			ID:          item.GUID,
			Title:       title,
			Description: truncateRunes(c.extractor.ExtractText(item.Description), maxDescriptionLength),
			PubDate:     item.Published,
		}
		// GUIDが欠損したエピソードには位置ベースの合成IDを振る
		if episode.ID == "" {
			episode.ID = fmt.Sprintf("episode_%d", i)
		}

		if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
			episode.AudioURL = item.Enclosures[0].URL
		}
		if item.ITunesExt != nil {
			episode.Duration = ParseDuration(item.ITunesExt.Duration)
		}

		episodes = append(episodes, episode)
	}

	c.logEpisodesFetched(feedURL, len(episodes))
	return episodes, nil
}

// atomEpisodes はAtomフィードからエピソード一覧を抽出する。
// 音声URLはrel属性に関係なく、全link要素からtype属性がaudio/で始まるものを探す。
// Atomには標準の再生時間フィールドがないため、Durationは常に0となる。
func (c *Client) atomEpisodes(body, feedURL string, limit int) ([]model.PodcastEpisode, error) {
	feed, err := (&atom.Parser{}).Parse(strings.NewReader(body))
	if err != nil {
		c.logger.Error("Podcastフィードのパースに失敗しました",
			slog.String("feed_url", feedURL),
			slog.String("error", err.Error()),
		)
		return nil, model.NewParseFailedError(err.Error())
	}

	entries := feed.Entries
	if len(entries) > limit {
		entries = entries[:limit]
	}

	episodes := make([]model.PodcastEpisode, 0, len(entries))
	for i, entry := range entries {
		if entry == nil {
			c.recordSkip()
			continue
		}

		title := c.extractor.ExtractText(entry.Title)
		if title == "" {
			title = untitledPlaceholder
		}

		episode := model.PodcastEpisode{
			ID:          entry.ID,
			Title:       title,
			Description: truncateRunes(c.extractor.ExtractText(entry.Summary), maxDescriptionLength),
			PubDate:     entry.Published,
			AudioURL:    atomAudioURL(entry.Links),
		}
		if episode.ID == "" {
			episode.ID = fmt.Sprintf("episode_%d", i)
		}

		episodes = append(episodes, episode)
	}

	c.logEpisodesFetched(feedURL, len(episodes))
	return episodes, nil
}

// atomAudioURL はAtomのlink要素からtype属性がaudio/で始まる最初のリンクのURLを返す。
func atomAudioURL(links []*atom.Link) string {
	for _, link := range links {
		if link != nil && strings.HasPrefix(link.Type, "audio/") {
			return link.Href
		}
	}
	return ""
}

func (c *Client) logEpisodesFetched(feedURL string, count int) {
	c.logger.Info("Podcastエピソードを取得しました",
		slog.String("feed_url", feedURL),
		slog.Int("count", count),
	)
}

// truncateRunes は文字列を最大max文字（rune単位）に切り詰める。
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// recordSkip はメトリクスが設定されている場合にスキップを記録する。
func (c *Client) recordSkip() {
	if c.metrics != nil {
		c.metrics.RecordItemSkipped(source)
	}
}
