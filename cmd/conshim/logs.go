package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zaolin/conshim/consolelog"
	"github.com/zaolin/conshim/internal/compress"
	"github.com/zaolin/conshim/internal/config"
	intcpio "github.com/zaolin/conshim/internal/cpio"
	"github.com/zaolin/conshim/tui"
)

// Run executes the view command
func (c *ViewCmd) Run() error {
	return tui.Run(c.Path, c.Follow)
}

// Run executes the archive command
func (c *ArchiveCmd) Run() error {
	algorithm, err := resolveCompression(c.Config, c.Compression)
	if err != nil {
		return err
	}

	out, err := consolelog.Archive(c.Path, algorithm)
	if err != nil {
		return err
	}
	fmt.Printf("conshim: archived %s -> %s\n", c.Path, out)
	return nil
}

// Run executes the bundle command
func (c *BundleCmd) Run() error {
	algorithm, err := resolveCompression(c.Config, c.Compression)
	if err != nil {
		return err
	}

	if err := runBundle(c.Output, algorithm, c.Files); err != nil {
		return err
	}
	fmt.Printf("conshim: bundled %d log(s) into %s\n", len(c.Files), c.Output)
	return nil
}

func resolveCompression(configPath, flag string) (string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return "", err
	}
	if flag != "" {
		cfg.Compression = flag
	}
	if !compress.Valid(cfg.Compression) {
		return "", fmt.Errorf("unknown compression %q (want one of %v)", cfg.Compression, compress.Algorithms)
	}
	return cfg.Compression, nil
}

// runBundle writes files under logs/ in a compressed cpio archive
func runBundle(output, algorithm string, files []string) error {
	outFile, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer outFile.Close()

	compWriter, err := compress.NewWriter(outFile, algorithm)
	if err != nil {
		return fmt.Errorf("create compressor: %w", err)
	}

	archive := intcpio.NewArchive(compWriter)
	seen := make(map[string]bool)
	for _, f := range files {
		name := filepath.Base(f)
		if seen[name] {
			return fmt.Errorf("duplicate log name %s", name)
		}
		seen[name] = true

		if err := archive.AddFileFromDisk(f, "logs/"+name); err != nil {
			return fmt.Errorf("add %s: %w", f, err)
		}
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	if err := compWriter.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}
	return outFile.Close()
}
