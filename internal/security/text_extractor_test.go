package security

import "testing"

func TestTextExtractor_ExtractText(t *testing.T) {
	e := NewTextExtractor()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"タグの除去", "<p>こんにちは</p>", "こんにちは"},
		{"ネストしたタグ", "<div><b>太字</b>と<i>斜体</i></div>", "太字と斜体"},
		{"エンティティの復元", "&lt;tag&gt; &amp; &quot;quote&quot;", `<tag> & "quote"`},
		{"前後の空白除去", "  <p> 本文 </p>  ", "本文"},
		{"スクリプトの除去", `<script>alert("x")</script>安全な本文`, "安全な本文"},
		{"空文字列", "", ""},
		{"タグなし", "そのままのテキスト", "そのままのテキスト"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.ExtractText(tt.input); got != tt.want {
				t.Errorf("ExtractText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
