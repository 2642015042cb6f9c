package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/hay-kot/termassist/internal/commands"
	"github.com/hay-kot/termassist/internal/termassist"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	var (
		flags = &commands.Flags{}
		app   = &termassist.App{}
	)

	root, err := commands.Build(flags, app, os.Stdout, build())
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	if runErr := root.Run(context.Background(), os.Args); runErr != nil {
		fmt.Println(runErr.Error())
		os.Exit(1)
	}
}
