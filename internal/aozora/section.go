package aozora

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/esuna/esuna-api/internal/model"
)

const (
	// maxSectionTitleLength は見出しとして扱うテキストの最大文字数。
	maxSectionTitleLength = 30
	// maxSectionContentLength は読み上げ用にセクションを強制分割する文字数。
	maxSectionContentLength = 1000
	// fallbackSectionTitle はセクション検出に失敗した場合の単一セクションの見出し。
	fallbackSectionTitle = "本文"
)

var (
	// rubyPattern は《》で囲まれたルビ（ふりがな）。
	rubyPattern = regexp.MustCompile(`《[^》]+》`)
	// annotationPattern は［］で囲まれた編集注記。
	annotationPattern = regexp.MustCompile(`［[^］]+］`)
	// fullWidthDigits は全角数字のみのテキスト。
	fullWidthDigits = regexp.MustCompile(`^[０-９]+$`)
	// kanjiNumerals は漢数字のみのテキスト。
	kanjiNumerals = regexp.MustCompile(`^[一二三四五六七八九十百千]+$`)
	// asciiDigits は半角数字のみのテキスト。
	asciiDigits = regexp.MustCompile(`^[0-9]+$`)
)

// sectionKeywords は見出しを示すキーワード。
var sectionKeywords = []string{"序", "章", "編", "部", "話", "エピローグ", "プロローグ"}

// CleanRuby はルビ・編集注記・ルビ開始記号（縦棒）を除去する。
// 例: 漢字《かんじ》 -> 漢字
// 冪等であり、除去後のテキストに対象の記号は残らない。
func CleanRuby(text string) string {
	text = rubyPattern.ReplaceAllString(text, "")
	text = annotationPattern.ReplaceAllString(text, "")
	return strings.ReplaceAll(text, "｜", "")
}

// isSectionHeading はテキストがセクション見出しかどうかを判定する。
// 短く（30文字未満）、数字のみ・全角数字のみ・漢数字のみ、
// または見出しキーワードを含む場合に見出しとみなす。
// 文法ではなくヒューリスティックであり、動作互換のため規則は変更しない。
func isSectionHeading(text string) bool {
	if utf8.RuneCountInString(text) >= maxSectionTitleLength {
		return false
	}

	if asciiDigits.MatchString(text) {
		return true
	}
	if fullWidthDigits.MatchString(text) {
		return true
	}
	if kanjiNumerals.MatchString(text) {
		return true
	}

	for _, keyword := range sectionKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}

	return false
}

// segmentParagraphs は本文の段落列を読み上げ用セクションに分割する。
// 段落を文書順に走査し、見出しを検出したら現在のセクションを閉じて
// 新しいセクションを開始する。見出しでないテキストはスペース結合で蓄積し、
// 1000文字を超えたら見出しなしの新セクションに強制分割する。
// 空の本文を持つセクションは出力されない。
func segmentParagraphs(paragraphs []string) []model.NovelSection {
	var sections []model.NovelSection
	current := model.NovelSection{}

	for _, raw := range paragraphs {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}

		// ルビ等の注釈はセクション分類の前に必ず除去する
		text = CleanRuby(text)

		if isSectionHeading(text) {
			// 前のセクションを保存し、新しいセクションを開始する
			if current.Content != "" {
				sections = append(sections, current)
			}
			current = model.NovelSection{Title: text}
		} else {
			if current.Content != "" {
				current.Content += " "
			}
			current.Content += text
		}

		// 読み上げ用に一定の長さごとに区切る
		if utf8.RuneCountInString(current.Content) > maxSectionContentLength {
			sections = append(sections, current)
			current = model.NovelSection{}
		}
	}

	// 最後のセクションを追加する
	if current.Content != "" {
		sections = append(sections, current)
	}

	return sections
}
