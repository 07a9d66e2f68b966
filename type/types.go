package mtypes

import (
	"image"
	"image/color"
)

// Point 轮廓上的一个像素点（row 为行，col 为列，原点在左上角）
type Point struct {
	Row, Col int
}

// Contour 有序的闭合轮廓，最后一点隐式连接回第一点
type Contour []Point

// ShapeSample 单张输入图的提取结果：轮廓、填充色和加边后的画布尺寸
type ShapeSample struct {
	Line   Contour
	Color  color.NRGBA // 在第一个前景像素处采样的填充色
	Width  int
	Height int
}

// ResampledPair 两条等长轮廓，下标 i 一一对应
type ResampledPair struct {
	A, B Contour
}

// Frame 某个时间点 t 渲染完成的一帧图像
type Frame struct {
	Index int
	Image *image.RGBA
}

// AnimationSequence 封装全部帧和播放参数，交给编码器输出
type AnimationSequence struct {
	Frames     []Frame
	IntervalMS float64 // 每帧时长（毫秒），仅对带时序的格式有意义
	Loop       int     // 循环次数，0 表示无限循环
}
