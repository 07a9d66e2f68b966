package image2line

import (
	"errors"
	"image"
	"image/color"
	"testing"

	mtypes "github.com/postmodernist1488/morpher/type"
)

var red = color.NRGBA{R: 255, A: 255}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func fillCircle(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

func contourBounds(line mtypes.Contour) (minR, minC, maxR, maxC int) {
	minR, minC = line[0].Row, line[0].Col
	maxR, maxC = line[0].Row, line[0].Col
	for _, p := range line {
		minR = min(minR, p.Row)
		maxR = max(maxR, p.Row)
		minC = min(minC, p.Col)
		maxC = max(maxC, p.Col)
	}
	return minR, minC, maxR, maxC
}

func TestTraceSquare(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	fillRect(img, image.Rect(25, 25, 75, 75), red)

	sample, err := Trace(img, "square.png")
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if sample.Width != 102 || sample.Height != 102 {
		t.Errorf("padded extent = %dx%d, want 102x102", sample.Width, sample.Height)
	}
	if sample.Color != red {
		t.Errorf("fill color = %v, want %v", sample.Color, red)
	}
	if len(sample.Line) < 3 {
		t.Fatalf("contour has %d points, want at least 3", len(sample.Line))
	}

	// 方形像素占 25..74，加一圈边框后是 26..75
	minR, minC, maxR, maxC := contourBounds(sample.Line)
	for _, check := range []struct {
		name      string
		got, want int
	}{
		{"min row", minR, 26},
		{"min col", minC, 26},
		{"max row", maxR, 75},
		{"max col", maxC, 75},
	} {
		if d := check.got - check.want; d < -1 || d > 1 {
			t.Errorf("%s = %d, want %d (±1)", check.name, check.got, check.want)
		}
	}

	// 轮廓闭合：最后一个点回到扫描找到的起点
	start := mtypes.Point{Row: 26, Col: 26}
	if got := sample.Line[len(sample.Line)-1]; got != start {
		t.Errorf("contour ends at %v, want %v", got, start)
	}
}

func TestTraceVisitsOnlyBoundary(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	fillCircle(img, 50, 50, 20, red)

	sample, err := Trace(img, "circle.png")
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}

	padded := pad(img)
	for i, p := range sample.Line {
		if !foreground(padded, p) {
			t.Fatalf("point %d %v is not a foreground pixel", i, p)
		}
		if !isBoundary(padded, p) {
			t.Fatalf("point %d %v has no background 4-neighbor", i, p)
		}
		if i > 0 && p == sample.Line[i-1] {
			t.Fatalf("points %d and %d are identical: %v", i-1, i, p)
		}
	}
}

func TestTraceHoleFails(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	fillRect(img, image.Rect(25, 25, 75, 75), red)
	// 形状中间抠掉一个像素
	img.SetNRGBA(50, 50, color.NRGBA{})

	_, err := Trace(img, "holey.png")
	var ue *UntraceableError
	if !errors.As(err, &ue) {
		t.Fatalf("Trace returned %v, want *UntraceableError", err)
	}
	if ue.Name != "holey.png" {
		t.Errorf("error names %q, want %q", ue.Name, "holey.png")
	}
}

func TestTraceEmptyImageFails(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))

	_, err := Trace(img, "blank.png")
	var ue *UntraceableError
	if !errors.As(err, &ue) {
		t.Fatalf("Trace returned %v, want *UntraceableError", err)
	}
}

func TestTraceSinglePixelFails(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	img.SetNRGBA(8, 8, red)

	_, err := Trace(img, "dot.png")
	var ue *UntraceableError
	if !errors.As(err, &ue) {
		t.Fatalf("Trace returned %v, want *UntraceableError", err)
	}
}
