package morph2frame

import (
	"image"
	"image/color"
	"testing"

	mtypes "github.com/postmodernist1488/morpher/type"
)

var blue = color.RGBA{B: 255, A: 255}

// squareOutline 按顺时针生成一个正方形的轮廓点列，
// 起点取上边的第二个像素，和追踪器的输出习惯一致
func squareOutline(x0, y0, x1, y1 int) []image.Point {
	var pts []image.Point
	for x := x0 + 1; x <= x1; x++ {
		pts = append(pts, image.Pt(x, y0))
	}
	for y := y0 + 1; y <= y1; y++ {
		pts = append(pts, image.Pt(x1, y))
	}
	for x := x1 - 1; x >= x0; x-- {
		pts = append(pts, image.Pt(x, y1))
	}
	for y := y1 - 1; y >= y0; y-- {
		pts = append(pts, image.Pt(x0, y))
	}
	return pts
}

func TestRenderFillsConvexInterior(t *testing.T) {
	pts := squareOutline(20, 20, 40, 40)
	frame := Render(0, pts, blue, 64, 64)

	img := frame.Image
	for y := 21; y < 40; y++ {
		for x := 21; x < 40; x++ {
			if got := img.RGBAAt(x, y); got != blue {
				t.Fatalf("interior pixel (%d,%d) = %v, want %v", x, y, got, blue)
			}
		}
	}
	for _, p := range []image.Point{{X: 0, Y: 0}, {X: 63, Y: 63}, {X: 10, Y: 30}, {X: 50, Y: 30}} {
		if got := img.RGBAAt(p.X, p.Y); got != white {
			t.Errorf("exterior pixel %v = %v, want white", p, got)
		}
	}
}

func TestRenderDoesNotLeakThroughDiagonals(t *testing.T) {
	// 菱形的四条边都是 45° 斜线，检查填充不会从对角缝隙漏出去
	pts := []image.Point{{X: 30, Y: 10}, {X: 50, Y: 30}, {X: 30, Y: 50}, {X: 10, Y: 30}}
	frame := Render(0, pts, blue, 60, 60)

	img := frame.Image
	if got := img.RGBAAt(30, 30); got != blue {
		t.Errorf("center = %v, want %v", got, blue)
	}
	for _, p := range []image.Point{{X: 1, Y: 1}, {X: 58, Y: 1}, {X: 1, Y: 58}, {X: 58, Y: 58}} {
		if got := img.RGBAAt(p.X, p.Y); got != white {
			t.Errorf("exterior pixel %v = %v, want white", p, got)
		}
	}
}

func TestRenderDegenerateInput(t *testing.T) {
	pts := []image.Point{{X: 10, Y: 10}, {X: 20, Y: 10}}
	frame := Render(3, pts, blue, 32, 32)

	if frame.Index != 3 {
		t.Errorf("frame index = %d, want 3", frame.Index)
	}
	// 两个点只画一条线，不做填充
	img := frame.Image
	if got := img.RGBAAt(15, 10); got != blue {
		t.Errorf("line pixel = %v, want %v", got, blue)
	}
	if got := img.RGBAAt(15, 20); got != white {
		t.Errorf("pixel below line = %v, want white (no fill)", got)
	}
}

func TestRenderEmptyInput(t *testing.T) {
	frame := Render(0, nil, blue, 16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if got := frame.Image.RGBAAt(x, y); got != white {
				t.Fatalf("pixel (%d,%d) = %v, want white", x, y, got)
			}
		}
	}
}

func TestAssemble(t *testing.T) {
	frames := []mtypes.Frame{
		{Index: 0, Image: image.NewRGBA(image.Rect(0, 0, 4, 4))},
		{Index: 1, Image: image.NewRGBA(image.Rect(0, 0, 4, 4))},
	}
	seq := Assemble(frames, 30, 7.0, -1)

	if len(seq.Frames) != 2 {
		t.Errorf("frame count = %d, want 2", len(seq.Frames))
	}
	if want := 7.0 * 1000 / 30; seq.IntervalMS != want {
		t.Errorf("interval = %v ms, want %v", seq.IntervalMS, want)
	}
	if seq.Loop != -1 {
		t.Errorf("loop = %d, want -1", seq.Loop)
	}
}
