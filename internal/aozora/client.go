// Package aozora は青空文庫の小説本文の取得機能を提供する。
// Shift_JISの本文ページからタイトル・著者を抽出し、
// ルビを除去した上で読み上げ用のセクションに分割する。
package aozora

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/esuna/esuna-api/internal/fetch"
	"github.com/esuna/esuna-api/internal/model"
)

const (
	// defaultBaseURL は青空文庫のベースURL。
	defaultBaseURL = "https://www.aozora.gr.jp"
	// unknownPlaceholder はタイトル・著者が抽出できない場合のプレースホルダー。
	unknownPlaceholder = "不明"
	// source はメトリクスラベル用の取得元名。
	source = "aozora"
)

// Client は青空文庫のクライアント。
type Client struct {
	fetcher *fetch.Client
	logger  *slog.Logger
	baseURL string // テスト用に差し替え可能
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(fetcher *fetch.Client, logger *slog.Logger) *Client {
	return &Client{
		fetcher: fetcher,
		logger:  logger,
		baseURL: defaultBaseURL,
	}
}

// FetchContent は作家IDとファイルIDから小説本文を取得する。
// 本文コンテナ（div.main_text）が存在しないページはエラーではなく、
// セクションなしの空コンテンツとして返される。
func (c *Client) FetchContent(ctx context.Context, authorID, fileID string) (*model.NovelContent, error) {
	pageURL := fmt.Sprintf("%s/cards/%s/files/%s.html", c.baseURL, authorID, fileID)

	body, err := c.fetcher.Get(ctx, pageURL, fetch.Options{
		Source:   source,
		Encoding: fetch.EncodingShiftJIS,
	})
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		c.logger.Error("小説ページのパースに失敗しました",
			slog.String("url", pageURL),
			slog.String("error", err.Error()),
		)
		return nil, model.NewParseFailedError(err.Error())
	}

	title := headingText(doc, "h1.title")
	author := headingText(doc, "h2.author")

	mainText := doc.Find("div.main_text").First()
	if mainText.Length() == 0 {
		c.logger.Warn("本文コンテナが見つかりません",
			slog.String("author_id", authorID),
			slog.String("file_id", fileID),
		)
		return &model.NovelContent{
			Title:    title,
			Author:   author,
			Content:  "",
			Sections: []model.NovelSection{},
		}, nil
	}

	// 段落相当の子ノードを文書順に収集する
	var paragraphs []string
	mainText.Find("p, div").Each(func(_ int, s *goquery.Selection) {
		paragraphs = append(paragraphs, s.Text())
	})

	sections := segmentParagraphs(paragraphs)

	// セクションが1つも検出されなかった場合は全文を1セクションにまとめる
	if len(sections) == 0 {
		fullText := CleanRuby(strings.TrimSpace(mainText.Text()))
		if fullText != "" {
			sections = []model.NovelSection{{
				Title:   fallbackSectionTitle,
				Content: fullText,
			}}
		} else {
			sections = []model.NovelSection{}
		}
	}

	contents := make([]string, len(sections))
	for i, s := range sections {
		contents[i] = s.Content
	}

	c.logger.Info("小説本文を取得しました",
		slog.String("title", title),
		slog.String("author", author),
		slog.Int("sections", len(sections)),
	)

	return &model.NovelContent{
		Title:    title,
		Author:   author,
		Content:  strings.Join(contents, " "),
		Sections: sections,
	}, nil
}

// headingText は狭いスコープの見出しセレクターからテキストを抽出する。
// 見つからない場合はプレースホルダーを返す。
func headingText(doc *goquery.Document, selector string) string {
	text := strings.TrimSpace(doc.Find(selector).First().Text())
	if text == "" {
		return unknownPlaceholder
	}
	return text
}
