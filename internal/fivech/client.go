// Package fivech は5ch（旧2ch）のスレッド一覧・投稿の取得機能を提供する。
// subject.txt（スレッド一覧）とdat形式（投稿）はいずれもShift_JISの
// パイプ区切りレガシーフォーマットで、フェッチ層でUTF-8に変換してからパースする。
package fivech

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/esuna/esuna-api/internal/fetch"
	"github.com/esuna/esuna-api/internal/model"
)

const (
	// fieldDelimiter はsubject.txtおよびdat形式のフィールド区切り。
	fieldDelimiter = "<>"
	// source はメトリクスラベル用の取得元名。
	source = "5ch"
)

var (
	// responseCountPattern はタイトル末尾の「(レス数)」を抽出する。
	responseCountPattern = regexp.MustCompile(`\((\d+)\)`)
	// responseCountSuffix はタイトルから除去する末尾の「(レス数)」部分。
	responseCountSuffix = regexp.MustCompile(`\s*\(\d+\)\s*$`)
	// threadIDPattern はスレッドURL末尾の数値パスセグメントを抽出する。
	threadIDPattern = regexp.MustCompile(`/(\d+)/?$`)
	// threadPathSuffix はスレッドURLから板URLを導出するために除去するパス。
	threadPathSuffix = regexp.MustCompile(`/test/read\.cgi/\d+/?$`)
	// lineBreakTag はHTML改行タグ。本文では改行文字に変換する。
	lineBreakTag = regexp.MustCompile(`(?i)<br\s*/?>`)
	// htmlTag は本文から除去する残りのHTMLタグ。
	htmlTag = regexp.MustCompile(`<[^>]+>`)
)

// SkipRecorder は不正アイテムスキップのメトリクス記録のインターフェース。
type SkipRecorder interface {
	RecordItemSkipped(source string)
}

// Client は5chのクライアント。
// 5chサーバーはクライアント識別用User-Agentを要求するため、専用の値を送信する。
type Client struct {
	fetcher   *fetch.Client
	logger    *slog.Logger
	metrics   SkipRecorder // nil許容
	userAgent string
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(fetcher *fetch.Client, logger *slog.Logger, metrics SkipRecorder, userAgent string) *Client {
	return &Client{
		fetcher:   fetcher,
		logger:    logger,
		metrics:   metrics,
		userAgent: userAgent,
	}
}

// ListThreads は指定された板のスレッド一覧を取得する。
// 板URLにsubject.txtを付加したURLをShift_JISでフェッチし、最大limit行をパースする。
// 区切り文字を含まない行はスキップされる。行順はsubject.txtの順序を保つ。
func (c *Client) ListThreads(ctx context.Context, boardURL string, limit int) ([]model.FivechThread, error) {
	subjectURL := strings.TrimRight(boardURL, "/") + "/subject.txt"

	body, err := c.fetcher.Get(ctx, subjectURL, fetch.Options{
		Source:    source,
		Encoding:  fetch.EncodingShiftJIS,
		UserAgent: c.userAgent,
	})
	if err != nil {
		return nil, err
	}

	return c.parseThreads(body, boardURL, limit), nil
}

// parseThreads はsubject.txtの内容をスレッド一覧にパースする。
func (c *Client) parseThreads(subjectTxt, boardURL string, limit int) []model.FivechThread {
	lines := strings.Split(strings.TrimSpace(subjectTxt), "\n")
	if len(lines) > limit {
		lines = lines[:limit]
	}

	base := strings.TrimRight(boardURL, "/")
	threads := make([]model.FivechThread, 0, len(lines))

	for _, line := range lines {
		// フォーマット: "datファイル名.dat<>スレッドタイトル (レス数)"
		if !strings.Contains(line, fieldDelimiter) {
			c.logger.Warn("区切り文字のない行をスキップしました",
				slog.String("board_url", boardURL),
			)
			c.recordSkip()
			continue
		}

		parts := strings.SplitN(line, fieldDelimiter, 2)
		datFile, titleWithCount := parts[0], parts[1]
		threadID := strings.TrimSuffix(datFile, ".dat")

		// レス数を抽出し、タイトルから除去する
		responseCount := 0
		title := titleWithCount
		if m := responseCountPattern.FindStringSubmatch(titleWithCount); m != nil {
			responseCount, _ = strconv.Atoi(m[1])
			title = responseCountSuffix.ReplaceAllString(titleWithCount, "")
		}

		threads = append(threads, model.FivechThread{
			Title:         title,
			URL:           fmt.Sprintf("%s/test/read.cgi/%s/", base, threadID),
			ResponseCount: responseCount,
			ThreadID:      threadID,
		})
	}

	return threads
}

// ListPosts はスレッドの投稿を取得する。
// スレッドURL末尾の数値セグメントからスレッドIDを抽出し（なければ不正入力エラー）、
// dat形式のURLをShift_JISでフェッチして[start, end]の範囲の行のみをパースする。
func (c *Client) ListPosts(ctx context.Context, threadURL string, start, end int) ([]model.FivechPost, error) {
	trimmed := strings.TrimRight(threadURL, "/")
	m := threadIDPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return nil, model.NewInvalidURLError(threadURL)
	}
	threadID := m[1]

	boardURL := threadPathSuffix.ReplaceAllString(threadURL, "")
	datURL := fmt.Sprintf("%s/%s.dat", strings.TrimRight(boardURL, "/"), threadID)

	body, err := c.fetcher.Get(ctx, datURL, fetch.Options{
		Source:    source,
		Encoding:  fetch.EncodingShiftJIS,
		UserAgent: c.userAgent,
	})
	if err != nil {
		return nil, err
	}

	return c.parsePosts(body, start, end), nil
}

// parsePosts はdat形式の内容を投稿一覧にパースする。
// 1始まりの行番号が[start, end]の範囲外の行、および
// フィールド数が4未満の行はエラーなしでスキップされる。
func (c *Client) parsePosts(datContent string, start, end int) []model.FivechPost {
	lines := strings.Split(strings.TrimSpace(datContent), "\n")
	var posts []model.FivechPost

	for i, line := range lines {
		number := i + 1
		if number < start || number > end {
			continue
		}

		// dat形式: "名前<>メール<>日付 ID<>本文<>スレタイ"
		// スレタイは最初の投稿以降は無視される
		parts := strings.Split(line, fieldDelimiter)
		if len(parts) < 4 {
			c.logger.Warn("フィールド数が不足した行をスキップしました",
				slog.Int("line_number", number),
			)
			c.recordSkip()
			continue
		}

		posts = append(posts, model.FivechPost{
			Number:   number,
			Name:     parts[0],
			Mail:     parts[1],
			DateTime: parts[2],
			Text:     cleanPostBody(parts[3]),
		})
	}

	return posts
}

// cleanPostBody は投稿本文のHTML改行タグを改行文字に変換し、残りのタグを除去する。
func cleanPostBody(body string) string {
	text := lineBreakTag.ReplaceAllString(body, "\n")
	return htmlTag.ReplaceAllString(text, "")
}

// recordSkip はメトリクスが設定されている場合にスキップを記録する。
func (c *Client) recordSkip() {
	if c.metrics != nil {
		c.metrics.RecordItemSkipped(source)
	}
}
