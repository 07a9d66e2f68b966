package frame2anim

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/gotranspile/gotrace"
	rsvg "github.com/rustyoz/svg"

	mtypes "github.com/postmodernist1488/morpher/type"
)

// FrameData 清单里一帧的矢量路径数据
type FrameData struct {
	FrameIndex int                 `json:"frameIndex"`
	Data       []map[string]string `json:"data"`
}

// Manifest 整个序列的矢量化结果清单
type Manifest struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Frames []FrameData `json:"frames"`
}

// EncodeSVG 把每一帧矢量化成单独的 SVG 文件（1.svg、2.svg……），
// 并在同一目录下生成 frames.json 清单
func EncodeSVG(seq mtypes.AnimationSequence, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	manifest := Manifest{Frames: make([]FrameData, 0, len(seq.Frames))}
	firstSVG := ""
	for _, frame := range seq.Frames {
		doc, fill, err := frameToSVG(frame.Image)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame.Index, err)
		}

		name := filepath.Join(dir, fmt.Sprintf("%d.svg", frame.Index+1))
		if err := os.WriteFile(name, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		if firstSVG == "" {
			firstSVG = doc
		}

		manifest.Frames = append(manifest.Frames, FrameData{
			FrameIndex: frame.Index,
			Data: []map[string]string{{
				"color":    fmt.Sprintf("#%02x%02x%02x", fill.R, fill.G, fill.B),
				"pathdata": strings.Join(extractPaths(doc), " "),
			}},
		})
	}

	// 从生成的 SVG 里读回画布尺寸写进清单
	if firstSVG != "" {
		w, h, err := viewBoxSize(firstSVG)
		if err != nil {
			return err
		}
		manifest.Width, manifest.Height = w, h
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	name := filepath.Join(dir, "frames.json")
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// frameToSVG 核心：用 gotrace 把一帧的形状掩码矢量化，再拼成带填充色的 SVG 文档
func frameToSVG(img *image.RGBA) (string, color.RGBA, error) {
	mask, fill := shapeMask(img)

	bm := gotrace.BitmapFromGray(mask, nil)
	paths, err := gotrace.Trace(bm, nil)
	if err != nil {
		return "", fill, fmt.Errorf("trace mask: %w", err)
	}

	var traced bytes.Buffer
	sz := mask.Bounds().Size()
	if err := gotrace.Render("svg", nil, &traced, paths, sz.X, sz.Y); err != nil {
		return "", fill, fmt.Errorf("render svg: %w", err)
	}

	var doc bytes.Buffer
	canvas := svg.New(&doc)
	canvas.Startview(sz.X, sz.Y, 0, 0, sz.X, sz.Y)
	style := fmt.Sprintf("fill:#%02x%02x%02x", fill.R, fill.G, fill.B)
	for _, d := range extractPaths(traced.String()) {
		canvas.Path(d, style)
	}
	canvas.End()
	return doc.String(), fill, nil
}

// shapeMask 把非白像素标成黑色掩码（黑=形状，白=背景），
// 同时取第一个非白像素作为这一帧的填充色
func shapeMask(img *image.RGBA) (*image.Gray, color.RGBA) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	bounds := img.Bounds()
	mask := image.NewGray(bounds)
	fill := white
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c == white {
				mask.SetGray(x, y, color.Gray{Y: 255})
				continue
			}
			mask.SetGray(x, y, color.Gray{Y: 0})
			if fill == white {
				fill = c
			}
		}
	}
	return mask, fill
}

// extractPaths 从 SVG 字符串中提取所有 <path> 的 d 属性
func extractPaths(doc string) []string {
	type path struct {
		D string `xml:"d,attr"`
	}
	type svgDoc struct {
		Paths []path `xml:"path"`
		Gs    []struct {
			Paths []path `xml:"path"`
		} `xml:"g"`
	}

	var s svgDoc
	if err := xml.Unmarshal([]byte(doc), &s); err != nil {
		return nil
	}

	var out []string
	for _, p := range s.Paths {
		out = append(out, p.D)
	}
	for _, g := range s.Gs {
		for _, p := range g.Paths {
			out = append(out, p.D)
		}
	}
	return out
}

// viewBoxSize 解析生成的 SVG，从 viewBox 读回画布尺寸
func viewBoxSize(doc string) (int, int, error) {
	parsed, err := rsvg.ParseSvg(doc, "frame", 1.0)
	if err != nil {
		return 0, 0, fmt.Errorf("parse svg: %w", err)
	}
	split := strings.Split(parsed.ViewBox, " ")
	if len(split) != 4 {
		return 0, 0, fmt.Errorf("unexpected viewBox %q", parsed.ViewBox)
	}
	w, _ := strconv.Atoi(split[2])
	h, _ := strconv.Atoi(split[3])
	return w, h, nil
}
