// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextExtractorService はHTML断片から読み上げ用のプレーンテキストを抽出する。
// bluemondayのStrictPolicyで全タグを除去し、HTMLエンティティを復元する。
// Podcastの説明文・SNS投稿本文・5chレス本文の正規化に使用される。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextExtractorService はHTMLのプレーンテキスト抽出機能のインターフェースを定義する。
type TextExtractorService interface {
	// ExtractText はHTML断片から全タグを除去したプレーンテキストを返す。
	// スクリプト等の危険な要素は内容ごと除去される。
	// HTMLエンティティ（&amp;等）は元の文字に復元される。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	ExtractText(rawHTML string) string
}

// textExtractor はTextExtractorServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフに抽出処理を行う。
type textExtractor struct {
	policy *bluemonday.Policy
}

// NewTextExtractor はTextExtractorServiceの新しいインスタンスを生成する。
// StrictPolicyはタグを一切許可せず、テキストノードのみを通過させる。
func NewTextExtractor() *textExtractor {
	return &textExtractor{
		policy: bluemonday.StrictPolicy(),
	}
}

// ExtractText はHTML断片から全タグを除去したプレーンテキストを返す。
func (e *textExtractor) ExtractText(rawHTML string) string {
	if rawHTML == "" {
		return ""
	}
	stripped := e.policy.Sanitize(rawHTML)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
