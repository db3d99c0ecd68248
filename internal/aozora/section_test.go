package aozora

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanRuby(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ルビの除去", "漢字《かんじ》は｜美しい《うつくしい》", "漢字は美しい"},
		{"編集注記の除去", "本文［＃ここから２字下げ］続き", "本文続き"},
		{"対象記号なし", "そのままのテキスト", "そのままのテキスト"},
		{"空文字列", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanRuby(tt.input); got != tt.want {
				t.Errorf("CleanRuby(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanRuby_Idempotent(t *testing.T) {
	input := "漢字《かんじ》と［注記］と｜印"
	once := CleanRuby(input)
	twice := CleanRuby(once)
	if once != twice {
		t.Errorf("CleanRuby は冪等でなければならない: 1回目=%q 2回目=%q", once, twice)
	}
}

func TestIsSectionHeading(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"第一章", true},
		{"エピローグ", true},
		{"プロローグ", true},
		{"三", true},
		{"１２", true},
		{"42", true},
		{"普通の段落のテキストです", false},
		{strings.Repeat("章", 30), false}, // 長すぎる見出し候補
	}

	for _, tt := range tests {
		if got := isSectionHeading(tt.input); got != tt.want {
			t.Errorf("isSectionHeading(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSegmentParagraphs_HeadingStartsNewSection(t *testing.T) {
	paragraphs := []string{
		"第一章",
		"最初の段落。",
		"続きの段落。",
		"第二章",
		"次の章の段落。",
	}

	sections := segmentParagraphs(paragraphs)
	if len(sections) != 2 {
		t.Fatalf("セクション数 = %d, want 2", len(sections))
	}

	if sections[0].Title != "第一章" {
		t.Errorf("Title = %q, want %q", sections[0].Title, "第一章")
	}
	if sections[0].Content != "最初の段落。 続きの段落。" {
		t.Errorf("Content = %q, want %q", sections[0].Content, "最初の段落。 続きの段落。")
	}
	if sections[1].Title != "第二章" {
		t.Errorf("Title = %q, want %q", sections[1].Title, "第二章")
	}
}

func TestSegmentParagraphs_EmptyParagraphsSkipped(t *testing.T) {
	sections := segmentParagraphs([]string{"", "  ", "本文のみ。"})
	if len(sections) != 1 {
		t.Fatalf("セクション数 = %d, want 1", len(sections))
	}
	if sections[0].Content != "本文のみ。" {
		t.Errorf("Content = %q, want %q", sections[0].Content, "本文のみ。")
	}
}

func TestSegmentParagraphs_NoEmptyContentSections(t *testing.T) {
	paragraphs := []string{"第一章", "第二章", "本文。"}

	sections := segmentParagraphs(paragraphs)
	for i, s := range sections {
		if s.Content == "" {
			t.Errorf("sections[%d] の本文が空: %+v", i, s)
		}
	}
}

func TestSegmentParagraphs_ForceSplitOnLongContent(t *testing.T) {
	long := strings.Repeat("あ", 600)
	paragraphs := []string{long, long, long}

	sections := segmentParagraphs(paragraphs)
	if len(sections) != 2 {
		t.Fatalf("セクション数 = %d, want 2", len(sections))
	}

	// 1000文字超過を検知した時点で強制分割される
	if utf8.RuneCountInString(sections[0].Content) != 1201 {
		t.Errorf("1つ目のセクション長 = %d, want 1201", utf8.RuneCountInString(sections[0].Content))
	}
	if utf8.RuneCountInString(sections[1].Content) != 600 {
		t.Errorf("2つ目のセクション長 = %d, want 600", utf8.RuneCountInString(sections[1].Content))
	}
	if sections[1].Title != "" {
		t.Errorf("強制分割セクションの見出し = %q, want 空文字列", sections[1].Title)
	}
}

func TestSegmentParagraphs_RubyRemovedBeforeClassification(t *testing.T) {
	// ルビを含めると30文字を超えるが、除去後は見出しとして扱われる
	paragraphs := []string{
		"第一章《だいいっしょう・とてもながいよみがなのれい》",
		"本文。",
	}

	sections := segmentParagraphs(paragraphs)
	if len(sections) != 1 {
		t.Fatalf("セクション数 = %d, want 1", len(sections))
	}
	if sections[0].Title != "第一章" {
		t.Errorf("Title = %q, want %q", sections[0].Title, "第一章")
	}
}
