package hatena

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/esuna/esuna-api/internal/fetch"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:hatena="http://www.hatena.ne.jp/info/xmlns#">
<channel>
<title>人気エントリー</title>
<link>https://b.hatena.ne.jp/hotentry</link>
<description>テストフィード</description>
<item>
<title>記事A</title>
<link>https://example.com/a</link>
<description>説明A</description>
<hatena:bookmarkcount>42</hatena:bookmarkcount>
<hatena:bookmarkCommentListPageUrl>https://b.hatena.ne.jp/entry/comment/a</hatena:bookmarkCommentListPageUrl>
</item>
<item>
<title>記事B</title>
<link>https://example.com/b</link>
<description>説明B</description>
</item>
<item>
<title></title>
<link></link>
</item>
</channel>
</rss>`

const commentsFixture = `<!DOCTYPE html>
<html><body>
<div class="js-bookmarks-recent">
<div class="entry-comment-contents">
<span class="entry-comment-username"><a>user1</a></span>
<span class="entry-comment-text">参考になった</span>
</div>
<div class="entry-comment-contents">
<span class="entry-comment-username"><a>user2</a></span>
<span class="entry-comment-text"></span>
</div>
<div class="entry-comment-contents">
<span class="entry-comment-username"><a></a></span>
<span class="entry-comment-text"></span>
</div>
</div>
</body></html>`

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func newTestHatenaClient(server *httptest.Server) *Client {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)
	fetcher := fetch.NewClient(server.Client(), logger, nil, nil, "test-agent", 5<<20)
	return NewClient(fetcher, logger, nil)
}

func TestClient_FetchHot_ParsesEntriesWithExtensions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssFixture))
	}))
	defer server.Close()

	c := newTestHatenaClient(server)
	c.hotURL = server.URL

	entries, err := c.FetchHot(context.Background())
	if err != nil {
		t.Fatalf("FetchHot がエラーを返した: %v", err)
	}

	// タイトルもリンクもないアイテムはスキップされる
	if len(entries) != 2 {
		t.Fatalf("エントリー数 = %d, want 2", len(entries))
	}

	first := entries[0]
	if first.Title != "記事A" {
		t.Errorf("Title = %q, want %q", first.Title, "記事A")
	}
	if first.URL != "https://example.com/a" {
		t.Errorf("URL = %q, want %q", first.URL, "https://example.com/a")
	}
	if first.BookmarkCount != 42 {
		t.Errorf("BookmarkCount = %d, want 42", first.BookmarkCount)
	}
	if first.CommentsURL != "https://b.hatena.ne.jp/entry/comment/a" {
		t.Errorf("CommentsURL = %q, want %q", first.CommentsURL, "https://b.hatena.ne.jp/entry/comment/a")
	}

	// 拡張タグのないアイテムはゼロ値になる
	second := entries[1]
	if second.BookmarkCount != 0 {
		t.Errorf("BookmarkCount = %d, want 0", second.BookmarkCount)
	}
	if second.CommentsURL != "" {
		t.Errorf("CommentsURL = %q, want 空文字列", second.CommentsURL)
	}
}

func TestClient_FetchLatest_UsesLatestEndpoint(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(rssFixture))
	}))
	defer server.Close()

	c := newTestHatenaClient(server)
	c.latestURL = server.URL + "/entrylist"

	if _, err := c.FetchLatest(context.Background()); err != nil {
		t.Fatalf("FetchLatest がエラーを返した: %v", err)
	}
	if requestedPath != "/entrylist" {
		t.Errorf("リクエストパス = %q, want %q", requestedPath, "/entrylist")
	}
}

func TestClient_FetchHot_MalformedDocumentReturnsParseFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("これはXMLではない"))
	}))
	defer server.Close()

	c := newTestHatenaClient(server)
	c.hotURL = server.URL

	if _, err := c.FetchHot(context.Background()); err == nil {
		t.Fatal("不正なドキュメントでエラーが返らなかった")
	}
}

func TestClient_FetchComments_ExtractsUserAndText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(commentsFixture))
	}))
	defer server.Close()

	c := newTestHatenaClient(server)

	comments, err := c.FetchComments(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchComments がエラーを返した: %v", err)
	}

	// ユーザー名・本文とも空のコメントは破棄される
	if len(comments) != 2 {
		t.Fatalf("コメント数 = %d, want 2", len(comments))
	}

	if comments[0].UserName != "user1" {
		t.Errorf("UserName = %q, want %q", comments[0].UserName, "user1")
	}
	if comments[0].Text != "参考になった" {
		t.Errorf("Text = %q, want %q", comments[0].Text, "参考になった")
	}

	// 本文のみ欠損したコメントは空文字列で保持される
	if comments[1].UserName != "user2" {
		t.Errorf("UserName = %q, want %q", comments[1].UserName, "user2")
	}
	if comments[1].Text != "" {
		t.Errorf("Text = %q, want 空文字列", comments[1].Text)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"42", 42},
		{" 10 ", 10},
		{"", 0},
		{"abc", 0},
		{"-5", 0},
	}

	for _, tt := range tests {
		if got := parseCount(tt.input); got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
