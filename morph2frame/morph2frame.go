package morph2frame

import (
	"image"
	"image/color"

	mtypes "github.com/postmodernist1488/morpher/type"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Render 在不透明白底画布上画出闭合轮廓并向内填充颜色，得到一帧。
// 点数不足 3 的退化输入只画折线，不做填充
func Render(index int, pts []image.Point, fill color.RGBA, w, h int) mtypes.Frame {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	if len(pts) == 0 {
		return mtypes.Frame{Index: index, Image: img}
	}
	for i := 1; i < len(pts); i++ {
		drawLine(img, pts[i-1], pts[i], fill)
	}
	drawLine(img, pts[len(pts)-1], pts[0], fill)

	if len(pts) >= 3 {
		// 种子点取第一个轮廓点正下方 5 个像素，默认它落在形状内部
		floodFill(img, image.Pt(pts[0].X, pts[0].Y+5), fill)
	}
	return mtypes.Frame{Index: index, Image: img}
}

// Assemble 把有序帧和播放参数打包成动画序列
func Assemble(frames []mtypes.Frame, nframes int, durationSeconds float64, loop int) mtypes.AnimationSequence {
	return mtypes.AnimationSequence{
		Frames:     frames,
		IntervalMS: durationSeconds * 1000.0 / float64(nframes),
		Loop:       loop,
	}
}

// drawLine 用 Bresenham 画一条单像素宽的线段
func drawLine(img *image.RGBA, a, b image.Point, c color.RGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		if (image.Point{X: x, Y: y}).In(img.Rect) {
			img.SetRGBA(x, y, c)
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// floodFill 从种子点开始做四方向填充，只替换纯白像素，
// 碰到轮廓线或已填充的像素就停下
func floodFill(img *image.RGBA, seed image.Point, c color.RGBA) {
	if c == white {
		return
	}
	stack := []image.Point{seed}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !p.In(img.Rect) || img.RGBAAt(p.X, p.Y) != white {
			continue
		}
		img.SetRGBA(p.X, p.Y, c)
		stack = append(stack,
			image.Pt(p.X-1, p.Y), image.Pt(p.X+1, p.Y),
			image.Pt(p.X, p.Y-1), image.Pt(p.X, p.Y+1))
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
