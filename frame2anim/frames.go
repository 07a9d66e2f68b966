package frame2anim

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	mtypes "github.com/postmodernist1488/morpher/type"
)

// EncodeFrames 把每一帧按序号写成单独的图片文件（1.png、2.png……），
// 输出目录不存在时自动创建。format 只支持 png 和 jpeg
func EncodeFrames(seq mtypes.AnimationSequence, dir, format string) error {
	if format != "png" && format != "jpeg" {
		return fmt.Errorf("unsupported frame format %q", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	for _, frame := range seq.Frames {
		name := filepath.Join(dir, fmt.Sprintf("%d.%s", frame.Index+1, format))
		if err := writeFrame(name, format, frame); err != nil {
			return err
		}
	}
	return nil
}

func writeFrame(name, format string, frame mtypes.Frame) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	switch format {
	case "png":
		err = png.Encode(f, frame.Image)
	case "jpeg":
		// 帧本身就是不透明白底，可以直接按 RGB 编码
		err = jpeg.Encode(f, frame.Image, nil)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}
