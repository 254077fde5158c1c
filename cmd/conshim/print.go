package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zaolin/conshim/console"
	"github.com/zaolin/conshim/consolelog"
	"github.com/zaolin/conshim/internal/config"
)

// Run executes the print command
func (c *PrintCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	// Override config with CLI flags
	if c.Level >= 0 {
		cfg.DebugLevel = c.Level
	}
	if c.Device != "" {
		cfg.Device = c.Device
	}
	if c.Log != "" {
		cfg.LogPath = c.Log
	}

	msg := strings.Join(c.Message, " ")
	if !c.NoNewline {
		msg += "\n"
	}

	return runPrint(cfg, c.Debug, c.Redirect, msg, os.Stdout)
}

func runPrint(cfg *config.Config, debug, redirect bool, msg string, stdout io.Writer) error {
	out := stdout
	device := cfg.Device
	if redirect && device == "" {
		device = "auto"
	}
	if device != "" {
		var paths []string
		if device != "auto" {
			paths = []string{device}
		}
		open := console.Open
		if redirect {
			open = console.Setup
		}
		fd, err := open(paths...)
		if err != nil {
			return err
		}
		defer fd.Close()
		out = fd
	}

	var hook console.LogFunc
	if cfg.LogPath != "" {
		if err := consolelog.Init(cfg.LogPath); err != nil {
			return fmt.Errorf("console log: %w", err)
		}
		defer consolelog.Close()
		hook = consolelog.Hook
	}

	con := newConsole(cfg, out, hook)
	console.SetOutputFunc(con.Output)
	defer console.SetOutputFunc(nil)

	console.OutputStr(debug, msg)
	return nil
}

func newConsole(cfg *config.Config, out io.Writer, hook console.LogFunc) *console.Console {
	return console.New(out,
		console.WithDebugLevel(console.DebugLevel(cfg.DebugLevel)),
		console.WithDebugPrefix(cfg.DebugPrefix),
		console.WithDebugColor(cfg.DebugColor),
		console.WithLogFunc(hook),
	)
}
