package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
)

const (
	defaultNFrames  = 30
	defaultDuration = 7.0
	defaultFormat   = "gif"
)

func main() {
	opts := &options{}
	flag.StringVar(&opts.outputPath, "o", "", "输出文件路径（gif/mp4），其他格式为帧序列的输出目录")
	flag.IntVar(&opts.nframes, "n", defaultNFrames, "帧数")
	flag.Float64Var(&opts.duration, "d", defaultDuration, "动画时长，单位秒")
	flag.StringVar(&opts.format, "f", defaultFormat, "输出格式：gif、png、jpeg、mp4、svg")
	flag.IntVar(&opts.loop, "l", 0, "循环次数，0 表示无限循环，-1 表示只播一遍")
	flag.StringVar(&opts.easing, "e", "linear", "时间缓动函数")
	flag.BoolVar(&opts.serial, "serial", false, "是否串行渲染以减少内存使用")
	help := flag.Bool("help", false, "显示帮助信息")
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}
	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] FROM TO\n", os.Args[0])
		flag.Usage()
		os.Exit(1)
	}
	opts.fromPath = flag.Arg(0)
	opts.toPath = flag.Arg(1)

	if opts.outputPath == "" {
		if opts.format == "gif" || opts.format == "mp4" {
			opts.outputPath = "res." + opts.format
		} else {
			opts.outputPath = "res"
		}
	}

	if err := opts.validate(); err != nil {
		log.Fatal(err)
	}
	if err := checkOutputPath(opts); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	if err := generateMorphToFile(ctx, opts); err != nil {
		log.Fatal(err)
	}
}

// checkOutputPath 按格式检查输出路径：单文件格式不能指向目录，
// 帧序列格式不能指向已有的普通文件
func checkOutputPath(opts *options) error {
	info, err := os.Stat(opts.outputPath)
	if err != nil {
		return nil
	}
	switch opts.format {
	case "gif", "mp4":
		if info.IsDir() {
			return &ParamError{Flag: "-o", Reason: fmt.Sprintf("`%s` is a directory", opts.outputPath)}
		}
	default:
		if !info.IsDir() {
			return &ParamError{Flag: "-o", Reason: fmt.Sprintf("`%s` is not a directory", opts.outputPath)}
		}
	}
	return nil
}
