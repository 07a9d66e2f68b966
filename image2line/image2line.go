package image2line

import (
	"fmt"
	"image"
	"image/draw"

	mtypes "github.com/postmodernist1488/morpher/type"
)

// UntraceableError 表示无法沿形状边界走出闭合轮廓
type UntraceableError struct {
	Name string
}

func (e *UntraceableError) Error() string {
	return fmt.Sprintf("border could not be traced for %s, make sure the picture has no holes", e.Name)
}

// 顺时针遍历 8 邻域的偏移量：上、右上、右、右下、下、左下、左、左上
var neighborOffsets = [8][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

const historySize = 8

// Trace 沿 8 邻域走出一张图中形状的外边界（Moore 邻域追踪），
// 返回轮廓、第一个前景像素处的填充色和加边后的画布尺寸
func Trace(img image.Image, name string) (mtypes.ShapeSample, error) {
	padded := pad(img)
	w := padded.Rect.Dx()
	h := padded.Rect.Dy()

	start, ok := findFirst(padded)
	if !ok {
		return mtypes.ShapeSample{}, &UntraceableError{Name: name}
	}
	fill := padded.NRGBAAt(start.Col, start.Row)

	// 形状内部有洞时外边界照样能走通，必须单独检查
	if hasEnclosedBackground(padded) {
		return mtypes.ShapeSample{}, &UntraceableError{Name: name}
	}

	// 最近访问过的 8 个点，初始化为画布外的哨兵位置，防止原地来回震荡
	var history [historySize]mtypes.Point
	for i := range history {
		history[i] = mtypes.Point{Row: h, Col: w}
	}

	// 起点不先入列：轮廓从起点的下一个边界像素开始，最后一个元素
	// 回到起点，这样下游取第一个点偏移出的种子不会落在轮廓线上
	var line mtypes.Contour
	cur := start
	maxSteps := 4*w*h + 8
	for steps := 0; ; steps++ {
		if steps >= maxSteps {
			return mtypes.ShapeSample{}, &UntraceableError{Name: name}
		}
		next, ok := nextBoundary(padded, cur, &history)
		if !ok {
			return mtypes.ShapeSample{}, &UntraceableError{Name: name}
		}
		line = append(line, next)
		cur = next
		if next == start {
			break
		}
	}

	if len(line) < 3 {
		return mtypes.ShapeSample{}, &UntraceableError{Name: name}
	}
	return mtypes.ShapeSample{Line: line, Color: fill, Width: w, Height: h}, nil
}

// pad 在四周加一圈全透明像素，省去追踪时的越界判断
func pad(img image.Image) *image.NRGBA {
	b := img.Bounds()
	padded := image.NewNRGBA(image.Rect(0, 0, b.Dx()+2, b.Dy()+2))
	draw.Draw(padded, image.Rect(1, 1, b.Dx()+1, b.Dy()+1), img, b.Min, draw.Src)
	return padded
}

// findFirst 自上而下逐行扫描，返回第一个不透明像素的位置
func findFirst(p *image.NRGBA) (mtypes.Point, bool) {
	for y := 0; y < p.Rect.Dy(); y++ {
		for x := 0; x < p.Rect.Dx(); x++ {
			if p.NRGBAAt(x, y).A != 0 {
				return mtypes.Point{Row: y, Col: x}, true
			}
		}
	}
	return mtypes.Point{}, false
}

// nextBoundary 按固定顺时针顺序找下一个合格的边界像素：
// 必须是前景、4 邻域里至少有一个背景、且不在最近访问过的点里
func nextBoundary(p *image.NRGBA, cur mtypes.Point, history *[historySize]mtypes.Point) (mtypes.Point, bool) {
	for _, d := range neighborOffsets {
		cand := mtypes.Point{Row: cur.Row + d[0], Col: cur.Col + d[1]}
		if !foreground(p, cand) || !isBoundary(p, cand) || seen(history, cand) {
			continue
		}
		copy(history[:], history[1:])
		history[historySize-1] = cand
		return cand, true
	}
	return mtypes.Point{}, false
}

func foreground(p *image.NRGBA, pt mtypes.Point) bool {
	if !(image.Point{X: pt.Col, Y: pt.Row}).In(p.Rect) {
		return false
	}
	return p.NRGBAAt(pt.Col, pt.Row).A != 0
}

func isBoundary(p *image.NRGBA, pt mtypes.Point) bool {
	return p.NRGBAAt(pt.Col, pt.Row-1).A == 0 ||
		p.NRGBAAt(pt.Col+1, pt.Row).A == 0 ||
		p.NRGBAAt(pt.Col, pt.Row+1).A == 0 ||
		p.NRGBAAt(pt.Col-1, pt.Row).A == 0
}

// hasEnclosedBackground 从加边后画布的角落做四方向填充，检查是否存在
// 连不到外部的透明像素，即形状内部的洞
func hasEnclosedBackground(p *image.NRGBA) bool {
	w := p.Rect.Dx()
	h := p.Rect.Dy()
	reached := make([]bool, w*h)

	stack := []mtypes.Point{{Row: 0, Col: 0}}
	for len(stack) > 0 {
		pt := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if pt.Row < 0 || pt.Row >= h || pt.Col < 0 || pt.Col >= w {
			continue
		}
		i := pt.Row*w + pt.Col
		if reached[i] || p.NRGBAAt(pt.Col, pt.Row).A != 0 {
			continue
		}
		reached[i] = true
		stack = append(stack,
			mtypes.Point{Row: pt.Row - 1, Col: pt.Col},
			mtypes.Point{Row: pt.Row + 1, Col: pt.Col},
			mtypes.Point{Row: pt.Row, Col: pt.Col - 1},
			mtypes.Point{Row: pt.Row, Col: pt.Col + 1})
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if p.NRGBAAt(x, y).A == 0 && !reached[y*w+x] {
				return true
			}
		}
	}
	return false
}

func seen(history *[historySize]mtypes.Point, pt mtypes.Point) bool {
	for _, h := range history {
		if h == pt {
			return true
		}
	}
	return false
}
