package sns

import "github.com/esuna/esuna-api/internal/model"

// samplePosts はサンプル投稿データ。
// Twitter/X APIは有料化されているため、また上流障害時のフォールバックとして使用する。
var samplePosts = []model.SNSPost{
	{
		Author:    "技術太郎",
		Handle:    "@tech_taro",
		Text:      "新しいアクセシビリティ機能を実装してみた。音声読み上げとキーボード操作だけでWebアプリが使えるようになった。",
		Timestamp: "5分前",
		Likes:     42,
		Retweets:  8,
	},
	{
		Author:    "開発花子",
		Handle:    "@dev_hanako",
		Text:      "FastAPIとNext.jsでモノレポ構成のアプリ作ってる。バックエンドでスクレイピング処理をやると、フロントエンドがシンプルになっていい感じ。",
		Timestamp: "15分前",
		Likes:     38,
		Retweets:  5,
	},
	{
		Author:    "アクセシビリティ次郎",
		Handle:    "@a11y_jiro",
		Text:      "視覚障害者向けのWebアプリ開発で大事なのは、統一された操作体系。毎回違う場所にボタンがあると混乱する。",
		Timestamp: "30分前",
		Likes:     156,
		Retweets:  32,
	},
	{
		Author:    "Web標準子",
		Handle:    "@web_std",
		Text:      "ARIAラベルとか、セマンティックHTMLとか、基本的なことをちゃんとやるだけでアクセシビリティは大幅に向上する。",
		Timestamp: "1時間前",
		Likes:     89,
		Retweets:  15,
	},
	{
		Author:    "Python愛好家",
		Handle:    "@python_lover",
		Text:      "BeautifulSoup4でスクレイピングしてたけど、最近はhttpxの非同期クライアントと組み合わせるのが快適。FastAPIとの相性も抜群。",
		Timestamp: "2時間前",
		Likes:     67,
		Retweets:  12,
	},
}

// sampleData はサンプル投稿の先頭limit件のコピーを返す。
func sampleData(limit int) []model.SNSPost {
	posts := samplePosts
	if len(posts) > limit {
		posts = posts[:limit]
	}
	out := make([]model.SNSPost, len(posts))
	copy(out, posts)
	return out
}
