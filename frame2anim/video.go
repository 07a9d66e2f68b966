package frame2anim

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"os"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	mtypes "github.com/postmodernist1488/morpher/type"
)

// EncodeVideo 通过管道把 PNG 帧逐张喂给 ffmpeg，编码成 MP4 视频。
// 帧率由序列的帧间隔换算得到
func EncodeVideo(ctx context.Context, seq mtypes.AnimationSequence, path string) error {
	fps := 1000.0 / seq.IntervalMS

	r, w := io.Pipe()

	cmd := ffmpeg.Input("pipe:0", ffmpeg.KwArgs{
		"format":    "image2pipe",
		"vcodec":    "png",
		"framerate": fmt.Sprintf("%g", fps),
	}).
		Output(path, ffmpeg.KwArgs{
			"vcodec":  "libx264",
			"pix_fmt": "yuv420p",
		}).
		OverWriteOutput().
		WithInput(r).
		WithErrorOutput(os.Stderr)
	cmd.Context = ctx

	go func() {
		for _, frame := range seq.Frames {
			if err := png.Encode(w, frame.Image); err != nil {
				w.CloseWithError(err)
				return
			}
		}
		w.Close()
	}()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg encode %s: %w", path, err)
	}
	return nil
}
