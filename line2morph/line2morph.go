package line2morph

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/ease"
	colorful "github.com/lucasb-eyer/go-colorful"

	mtypes "github.com/postmodernist1488/morpher/type"
)

// Easings 可选的时间缓动函数，默认 linear 即不做缓动
var Easings = map[string]func(float64) float64{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-out-cubic": ease.InOutCubic,
	"in-out-sine":  ease.InOutSine,
}

// Resample 均匀删点，把较长的轮廓抽稀到和较短的一样长。
// 每删完一轮重新计算步长，整体上比从一端截断更能保住形状。
// 两条轮廓保持各自原来的起点和走向，下标不做任何对齐
func Resample(a, b mtypes.Contour) mtypes.ResampledPair {
	ac := append(mtypes.Contour(nil), a...)
	bc := append(mtypes.Contour(nil), b...)

	longer, shorter := &ac, &bc
	if len(bc) > len(ac) {
		longer, shorter = &bc, &ac
	}
	for len(*longer) != len(*shorter) {
		step := float64(len(*longer)) / float64(len(*longer)-len(*shorter))
		for i := 0.0; i < float64(len(*longer)); i += step {
			at := int(i)
			*longer = append((*longer)[:at], (*longer)[at+1:]...)
			if len(*longer) == len(*shorter) {
				break
			}
		}
	}
	return mtypes.ResampledPair{A: ac, B: bc}
}

// Times 生成 nframes 个均匀分布在 [0,1] 闭区间上的采样点
func Times(nframes int) []float64 {
	ts := make([]float64, nframes)
	if nframes == 1 {
		return ts
	}
	for k := range ts {
		ts[k] = float64(k) / float64(nframes-1)
	}
	return ts
}

// Lerp 在 a 到 b 的线性刻度上取 t 处的值
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// Interpolate 按 t 对两条等长轮廓逐点插值，输出 (x, y) 点列供光栅化使用，
// 填充色在 RGB 通道上逐分量混合，alpha 固定为不透明
func Interpolate(pair mtypes.ResampledPair, c0, c1 color.NRGBA, t float64) ([]image.Point, color.RGBA) {
	pts := make([]image.Point, len(pair.A))
	for i := range pair.A {
		pts[i] = image.Point{
			X: int(math.Round(Lerp(float64(pair.A[i].Col), float64(pair.B[i].Col), t))),
			Y: int(math.Round(Lerp(float64(pair.A[i].Row), float64(pair.B[i].Row), t))),
		}
	}

	from := colorful.Color{R: float64(c0.R) / 255.0, G: float64(c0.G) / 255.0, B: float64(c0.B) / 255.0}
	to := colorful.Color{R: float64(c1.R) / 255.0, G: float64(c1.G) / 255.0, B: float64(c1.B) / 255.0}
	r, g, b := from.BlendRgb(to, t).RGB255()
	return pts, color.RGBA{R: r, G: g, B: b, A: 255}
}
