package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"nesgo/nes"
	"nesgo/ui"
)

func main() {
	scale := flag.Int("scale", 2, "window magnification")
	audio := flag.Bool("audio", true, "enable audio output")
	nestest := flag.Bool("nestest", false, "run the ROM in nestest automation mode and print the log")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] rom.nes\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	rom, err := ioutil.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	if *nestest {
		if _, err := nes.NestestRun(rom, os.Stdout, 0); err != nil {
			log.Fatal(err)
		}
		return
	}

	screen := ui.NewScreen()
	console, err := nes.NewConsole(rom, screen)
	if err != nil {
		log.Fatal(err)
	}

	if *audio {
		out := ui.NewAudio()
		if err := out.Start(console); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer out.Stop()
		}
	}

	ui.OpenWindow(console, screen, *scale)
}
