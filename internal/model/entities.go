package model

// HatenaEntry ははてなブックマークの1エントリーを表す。
// すべてのフィールドはRSSから抽出され、欠損時はゼロ値となる。
type HatenaEntry struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	CommentsURL   string `json:"comments_url,omitempty"`
	BookmarkCount int    `json:"bookmark_count"`
}

// HatenaComment ははてなブックマークのコメントを表す。
// ユーザー名と本文が両方空のコメントはパース時に破棄される。
type HatenaComment struct {
	UserName string `json:"user_name"`
	Text     string `json:"text"`
}

// FivechBoard は5chの板を表す。静的カタログであり、フェッチしない。
type FivechBoard struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// FivechThread は5chのスレッドを表す。
// タイトル末尾の「(レス数)」はResponseCountに分離され、タイトルからは除去される。
type FivechThread struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	ResponseCount int    `json:"response_count"`
	ThreadID      string `json:"thread_id"`
}

// FivechPost は5chの投稿を表す。
// Numberは要求ウィンドウ内での1始まりの行番号。
type FivechPost struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	DateTime string `json:"datetime"`
	Text     string `json:"text"`
	Mail     string `json:"mail"`
}

// NovelSection は小説本文の読み上げ単位セクションを表す。
// Titleは見出しとして認識されなかった場合は空になる。
type NovelSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NovelContent は青空文庫の小説本文を表す。
// Contentは全セクション本文のスペース結合。
type NovelContent struct {
	Title    string         `json:"title"`
	Author   string         `json:"author"`
	Content  string         `json:"content"`
	Sections []NovelSection `json:"sections"`
}

// PodcastEpisode はPodcastの1エピソードを表す。
// Durationは秒数で、不明な場合は0。
type PodcastEpisode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PubDate     string `json:"pub_date"`
	AudioURL    string `json:"audio_url,omitempty"`
	Duration    int    `json:"duration"`
}

// SNSPost はSNSの投稿を正規化した形を表す。
// Timestampは「N分前」形式の相対時刻文字列。
type SNSPost struct {
	Author    string `json:"author"`
	Handle    string `json:"handle"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Likes     int    `json:"likes"`
	Retweets  int    `json:"retweets"`
	URL       string `json:"url,omitempty"`
}

// StreamInfo はラジオストリーミングの再生情報を表す。
type StreamInfo struct {
	StreamURL string  `json:"streamUrl"`
	Format    string  `json:"format"`
	ExpiresAt *string `json:"expiresAt"`
}

// NowPlaying は現在放送中の番組情報を表す。
// 番組表連携が未実装のため、現状ではどの局についても返されない。
type NowPlaying struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// ErrorLog はフロントエンドから送信されるエラーレポートを表す。
type ErrorLog struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	UserAgent string `json:"user_agent,omitempty"`
	URL       string `json:"url,omitempty"`
}
