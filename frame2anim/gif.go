package frame2anim

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"

	mtypes "github.com/postmodernist1488/morpher/type"
)

const paletteSize = 256

// EncodeGIF 把动画序列编码成单个 GIF 文件。
// 循环次数原样透传：0 表示无限循环，-1 表示只播一遍
func EncodeGIF(seq mtypes.AnimationSequence, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	pal := sequencePalette(seq, paletteSize)
	delay := int(seq.IntervalMS / 10.0) // GIF 的延迟单位是 1/100 秒

	out := &gif.GIF{LoopCount: seq.Loop}
	for _, frame := range seq.Frames {
		bounds := frame.Image.Bounds()
		p := image.NewPaletted(bounds, pal)
		draw.Draw(p, p.Rect, frame.Image, bounds.Min, draw.Src)
		out.Image = append(out.Image, p)
		out.Delay = append(out.Delay, delay)
	}

	if err := gif.EncodeAll(f, out); err != nil {
		f.Close()
		return fmt.Errorf("encode gif %s: %w", path, err)
	}
	return f.Close()
}

// sequencePalette 从整个序列抽样像素做中位切分，得到 GIF 调色板
func sequencePalette(seq mtypes.AnimationSequence, colorCount int) color.Palette {
	var samples []pixel
	for _, frame := range seq.Frames {
		pix := frame.Image.Pix
		// 每 4 个像素取 1 个就足够覆盖序列里出现的颜色了
		for i := 0; i+3 < len(pix); i += 16 {
			samples = append(samples, pixel{r: int(pix[i]), g: int(pix[i+1]), b: int(pix[i+2])})
		}
	}
	return medianCutPalette(samples, colorCount)
}
