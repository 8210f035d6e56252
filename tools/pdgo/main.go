package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pdxgo/playdate/tools/fnt"
	"github.com/pdxgo/playdate/tools/pdimage"
	"github.com/pdxgo/playdate/tools/pdx"
)

const usageString = `pdgo is a tool for development of Playdate games in Go.

Usage:

	%s <command> [arguments]

The commands are:

	pdx      package a game binary into a pdx bundle and run it
	fnt      generate Playdate .fnt assets from font faces
	image    convert images to 1-bit Playdate images
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "pdx":
		pdx.Main(flag.Args())
	case "fnt":
		fnt.Main(flag.Args())
	case "image":
		pdimage.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
