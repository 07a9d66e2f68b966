package frame2anim

import (
	"image/color"
	"sort"
)

// pixel 表示一个采样像素的 RGB 值
type pixel struct {
	r, g, b int
}

// box 表示中位切分用的颜色盒子
type box struct {
	pixels                 []pixel
	rMin, rMax, gMin, gMax int
	bMin, bMax             int
}

// 计算盒子各通道的范围
func (b *box) calcRange() {
	if len(b.pixels) == 0 {
		return
	}
	b.rMin, b.rMax = 255, 0
	b.gMin, b.gMax = 255, 0
	b.bMin, b.bMax = 255, 0
	for _, p := range b.pixels {
		b.rMin = min(b.rMin, p.r)
		b.rMax = max(b.rMax, p.r)
		b.gMin = min(b.gMin, p.g)
		b.gMax = max(b.gMax, p.g)
		b.bMin = min(b.bMin, p.b)
		b.bMax = max(b.bMax, p.b)
	}
}

// medianCutPalette 对采样像素执行中位切分颜色量化，生成不超过
// colorCount 种颜色的调色板
func medianCutPalette(pixels []pixel, colorCount int) color.Palette {
	if len(pixels) == 0 {
		return color.Palette{color.RGBA{R: 255, G: 255, B: 255, A: 255}}
	}

	initial := &box{pixels: pixels}
	initial.calcRange()
	boxes := []*box{initial}

	// 不断切开范围最大的盒子，直到数量够了或者切不动为止
	for len(boxes) < colorCount && len(boxes) < len(pixels) {
		var toSplit *box
		maxRange := -1
		for _, b := range boxes {
			r := max(b.rMax-b.rMin, b.gMax-b.gMin, b.bMax-b.bMin)
			if r > maxRange {
				maxRange = r
				toSplit = b
			}
		}
		if toSplit == nil || maxRange == 0 {
			break
		}

		// 沿范围最大的通道排序后从中位切开
		rRange := toSplit.rMax - toSplit.rMin
		gRange := toSplit.gMax - toSplit.gMin
		bRange := toSplit.bMax - toSplit.bMin
		sort.Slice(toSplit.pixels, func(i, j int) bool {
			switch {
			case rRange >= gRange && rRange >= bRange:
				return toSplit.pixels[i].r < toSplit.pixels[j].r
			case gRange >= rRange && gRange >= bRange:
				return toSplit.pixels[i].g < toSplit.pixels[j].g
			default:
				return toSplit.pixels[i].b < toSplit.pixels[j].b
			}
		})

		median := len(toSplit.pixels) / 2
		box1 := &box{pixels: append([]pixel{}, toSplit.pixels[:median]...)}
		box2 := &box{pixels: append([]pixel{}, toSplit.pixels[median:]...)}
		box1.calcRange()
		box2.calcRange()

		for i, b := range boxes {
			if b == toSplit {
				boxes = append(boxes[:i], append([]*box{box1, box2}, boxes[i+1:]...)...)
				break
			}
		}
	}

	// 每个盒子的平均色作为一个调色板条目
	var palette color.Palette
	for _, b := range boxes {
		if len(b.pixels) == 0 {
			continue
		}
		var rSum, gSum, bSum int
		for _, p := range b.pixels {
			rSum += p.r
			gSum += p.g
			bSum += p.b
		}
		n := len(b.pixels)
		palette = append(palette, color.RGBA{
			R: uint8(rSum / n),
			G: uint8(gSum / n),
			B: uint8(bSum / n),
			A: 255,
		})
	}
	return palette
}
