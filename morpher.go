package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/postmodernist1488/morpher/frame2anim"
	"github.com/postmodernist1488/morpher/image2line"
	"github.com/postmodernist1488/morpher/line2morph"
	"github.com/postmodernist1488/morpher/morph2frame"
	mtypes "github.com/postmodernist1488/morpher/type"
)

// ParamError 表示调用参数不合法，在任何追踪工作开始前就会被拒绝
type ParamError struct {
	Flag   string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Flag, e.Reason)
}

var formats = map[string]bool{
	"gif":  true,
	"png":  true,
	"jpeg": true,
	"mp4":  true,
	"svg":  true,
}

type options struct {
	fromPath   string
	toPath     string
	outputPath string
	nframes    int
	duration   float64
	format     string
	loop       int
	easing     string
	serial     bool
}

func (o *options) validate() error {
	if o.fromPath == "" || o.toPath == "" {
		return &ParamError{Flag: "FROM TO", Reason: "two input images are required"}
	}
	if o.nframes <= 0 {
		return &ParamError{Flag: "-n", Reason: "a positive number of frames is required"}
	}
	if o.duration <= 0 {
		return &ParamError{Flag: "-d", Reason: "a positive duration in seconds is required"}
	}
	if o.loop < -1 {
		return &ParamError{Flag: "-l", Reason: "loop count must be -1 or greater"}
	}
	if !formats[o.format] {
		return &ParamError{Flag: "-f", Reason: fmt.Sprintf("unsupported format `%s`", o.format)}
	}
	if _, ok := line2morph.Easings[o.easing]; !ok {
		return &ParamError{Flag: "-e", Reason: fmt.Sprintf("unknown easing `%s`", o.easing)}
	}
	return nil
}

// generateMorphToFile 运行完整流水线并按格式写出结果
func generateMorphToFile(ctx context.Context, opts *options) error {
	seq, err := generateMorph(opts)
	if err != nil {
		return err
	}

	log.Println("Encoding output...")
	switch opts.format {
	case "gif":
		return frame2anim.EncodeGIF(seq, opts.outputPath)
	case "png", "jpeg":
		return frame2anim.EncodeFrames(seq, opts.outputPath, opts.format)
	case "mp4":
		return frame2anim.EncodeVideo(ctx, seq, opts.outputPath)
	case "svg":
		return frame2anim.EncodeSVG(seq, opts.outputPath)
	}
	return &ParamError{Flag: "-f", Reason: fmt.Sprintf("unsupported format `%s`", opts.format)}
}

// generateMorph 追踪两张输入图的轮廓，抽稀到等长后逐帧插值渲染，
// 得到可供编码的动画序列
func generateMorph(opts *options) (mtypes.AnimationSequence, error) {
	log.Println("Tracing input shapes...")
	from, err := traceFile(opts.fromPath)
	if err != nil {
		return mtypes.AnimationSequence{}, err
	}
	to, err := traceFile(opts.toPath)
	if err != nil {
		return mtypes.AnimationSequence{}, err
	}
	log.Printf("Traced %d and %d border points\n", len(from.Line), len(to.Line))

	pair := line2morph.Resample(from.Line, to.Line)

	// 画布取两张图的最大范围，不对轮廓本身做缩放
	w := max(from.Width, to.Width)
	h := max(from.Height, to.Height)

	easing := line2morph.Easings[opts.easing]
	ts := line2morph.Times(opts.nframes)

	log.Println("Rendering frames...")
	var frames []mtypes.Frame
	if opts.serial {
		frames = renderFrames(pair, from.Color, to.Color, ts, easing, w, h)
	} else {
		frames = renderFramesParallel(pair, from.Color, to.Color, ts, easing, w, h)
	}

	return morph2frame.Assemble(frames, opts.nframes, opts.duration, opts.loop), nil
}

// traceFile 解码一张输入图片并提取形状轮廓
func traceFile(path string) (mtypes.ShapeSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return mtypes.ShapeSample{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return mtypes.ShapeSample{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return image2line.Trace(img, path)
}

// renderFrames 串行渲染所有帧
func renderFrames(pair mtypes.ResampledPair, c0, c1 color.NRGBA, ts []float64, easing func(float64) float64, w, h int) []mtypes.Frame {
	frames := make([]mtypes.Frame, len(ts))
	for i, t := range ts {
		pts, fill := line2morph.Interpolate(pair, c0, c1, easing(t))
		frames[i] = morph2frame.Render(i, pts, fill, w, h)
	}
	return frames
}

// renderFramesParallel 并行渲染所有帧，帧与帧之间没有数据依赖
func renderFramesParallel(pair mtypes.ResampledPair, c0, c1 color.NRGBA, ts []float64, easing func(float64) float64, w, h int) []mtypes.Frame {
	frames := make([]mtypes.Frame, len(ts))

	var wg sync.WaitGroup
	for i, t := range ts {
		wg.Add(1)
		go func(idx int, t float64) {
			defer wg.Done()
			pts, fill := line2morph.Interpolate(pair, c0, c1, easing(t))
			frames[idx] = morph2frame.Render(idx, pts, fill, w, h)
		}(i, t)
	}
	wg.Wait()

	return frames
}
