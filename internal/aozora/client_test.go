package aozora

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/esuna/esuna-api/internal/fetch"
)

const novelPage = `<!DOCTYPE html>
<html><body>
<h1 class="title">吾輩は猫である</h1>
<h2 class="author">夏目漱石</h2>
<div class="main_text">
<div>一</div>
<p>吾輩《わがはい》は猫である。</p>
<p>名前はまだ無い。</p>
<div>二</div>
<p>どこで生れたかとんと見当がつかぬ。</p>
</div>
</body></html>`

const pageWithoutMainText = `<!DOCTYPE html>
<html><body>
<h1 class="title">題名のみ</h1>
</body></html>`

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func newTestAozoraClient(server *httptest.Server) *Client {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)
	fetcher := fetch.NewClient(server.Client(), logger, nil, nil, "test-agent", 5<<20)
	c := NewClient(fetcher, logger)
	c.baseURL = server.URL
	return c
}

// shiftJISBytes はUTF-8文字列をShift_JISバイト列に変換する。
func shiftJISBytes(t *testing.T, s string) []byte {
	t.Helper()
	encoded, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	if err != nil {
		t.Fatalf("Shift_JISエンコードに失敗: %v", err)
	}
	return encoded
}

func TestClient_FetchContent_ParsesNovelPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/000148/files/789_14547.html" {
			t.Errorf("リクエストパス = %q, want /cards/000148/files/789_14547.html", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/html; charset=Shift_JIS")
		w.Write(shiftJISBytes(t, novelPage))
	}))
	defer server.Close()

	c := newTestAozoraClient(server)

	content, err := c.FetchContent(context.Background(), "000148", "789_14547")
	if err != nil {
		t.Fatalf("FetchContent がエラーを返した: %v", err)
	}

	if content.Title != "吾輩は猫である" {
		t.Errorf("Title = %q, want %q", content.Title, "吾輩は猫である")
	}
	if content.Author != "夏目漱石" {
		t.Errorf("Author = %q, want %q", content.Author, "夏目漱石")
	}

	if len(content.Sections) != 2 {
		t.Fatalf("セクション数 = %d, want 2", len(content.Sections))
	}
	if content.Sections[0].Title != "一" {
		t.Errorf("Sections[0].Title = %q, want %q", content.Sections[0].Title, "一")
	}

	// ルビは除去されている
	want := "吾輩は猫である。 名前はまだ無い。"
	if content.Sections[0].Content != want {
		t.Errorf("Sections[0].Content = %q, want %q", content.Sections[0].Content, want)
	}

	// contentはセクション本文のスペース結合
	wantFull := "吾輩は猫である。 名前はまだ無い。 どこで生れたかとんと見当がつかぬ。"
	if content.Content != wantFull {
		t.Errorf("Content = %q, want %q", content.Content, wantFull)
	}
}

func TestClient_FetchContent_MissingMainTextIsNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(shiftJISBytes(t, pageWithoutMainText))
	}))
	defer server.Close()

	c := newTestAozoraClient(server)

	content, err := c.FetchContent(context.Background(), "000000", "1_1")
	if err != nil {
		t.Fatalf("FetchContent がエラーを返した: %v", err)
	}

	if content.Title != "題名のみ" {
		t.Errorf("Title = %q, want %q", content.Title, "題名のみ")
	}
	if content.Author != "不明" {
		t.Errorf("Author = %q, want %q", content.Author, "不明")
	}
	if content.Content != "" {
		t.Errorf("Content = %q, want 空文字列", content.Content)
	}
	if len(content.Sections) != 0 {
		t.Errorf("セクション数 = %d, want 0", len(content.Sections))
	}
}

func TestClient_FetchContent_FallbackSingleSection(t *testing.T) {
	// 段落要素を持たない本文は「本文」1セクションにまとめられる
	page := `<html><body>
<div class="main_text">地の文だけの作品《さくひん》。</div>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(shiftJISBytes(t, page))
	}))
	defer server.Close()

	c := newTestAozoraClient(server)

	content, err := c.FetchContent(context.Background(), "000000", "1_1")
	if err != nil {
		t.Fatalf("FetchContent がエラーを返した: %v", err)
	}

	if len(content.Sections) != 1 {
		t.Fatalf("セクション数 = %d, want 1", len(content.Sections))
	}
	if content.Sections[0].Title != "本文" {
		t.Errorf("Title = %q, want %q", content.Sections[0].Title, "本文")
	}
	if content.Sections[0].Content != "地の文だけの作品。" {
		t.Errorf("Content = %q, want %q", content.Sections[0].Content, "地の文だけの作品。")
	}
}

func TestClient_FetchContent_UpstreamErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestAozoraClient(server)

	if _, err := c.FetchContent(context.Background(), "000000", "1_1"); err == nil {
		t.Fatal("上流エラーでエラーが返らなかった")
	}
}
