// Package radio はラジオ配信のストリームURL解決機能を提供する。
//
// NHKラジオ（らじる★らじる）の公開HLSストリームのみ対応する。
// radikoは認証付きストリームのため未対応。
package radio

import (
	"fmt"
	"log/slog"

	"github.com/esuna/esuna-api/internal/model"
)

// nhkStreamURLs はNHKラジオの局IDと公開HLSストリームURLの対応表。
var nhkStreamURLs = map[string]string{
	"nhk-r1":    "https://radio-stream.nhk.jp/hls/live/2023229/nhkradiruakr1/master.m3u8",
	"nhk-r2":    "https://radio-stream.nhk.jp/hls/live/2023507/nhkradiruakr2/master.m3u8",
	"nhk-fm":    "https://radio-stream.nhk.jp/hls/live/2023507/nhkradiruakfm/master.m3u8",
	"nhk-world": "https://nhkworld.webcdn.stream.ne.jp/www11/radiojapan/all/263944/live.m3u8",
}

// Resolver はラジオストリームのリゾルバー。
type Resolver struct {
	logger *slog.Logger
}

// NewResolver はResolverの新しいインスタンスを生成する。
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// ResolveStream はサービスと局IDからストリーム情報を解決する。
// NHKの既知の局はHLSストリームを返す。ストリームに有効期限はない。
// radikoは未実装エラー、未知のサービス・局は入力エラーとなる。
func (r *Resolver) ResolveStream(service, stationID string) (*model.StreamInfo, error) {
	switch service {
	case "nhk":
		streamURL, ok := nhkStreamURLs[stationID]
		if !ok {
			r.logger.Warn("未知のNHK局IDが指定されました", slog.String("station_id", stationID))
			return nil, model.NewInvalidInputError(fmt.Sprintf("未知の局IDです: %s", stationID))
		}
		return &model.StreamInfo{
			StreamURL: streamURL,
			Format:    "hls",
			ExpiresAt: nil,
		}, nil

	case "radiko":
		return nil, model.NewNotImplementedError("radikoのストリーム取得は未対応です")

	default:
		r.logger.Warn("未知のラジオサービスが指定されました", slog.String("service", service))
		return nil, model.NewInvalidInputError(fmt.Sprintf("未対応のサービスです: %s", service))
	}
}

// ResolveNowPlaying は放送中の番組情報を解決する。
// 番組表連携が未実装のため、現在は常に情報なしを返す。
func (r *Resolver) ResolveNowPlaying(service, stationID string) (*model.NowPlaying, error) {
	r.logger.Info("番組情報は未連携です",
		slog.String("service", service),
		slog.String("station_id", stationID),
	)
	return nil, nil
}
