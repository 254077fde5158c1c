package main

// CLI defines the root command structure with subcommands
type CLI struct {
	Print   PrintCmd   `cmd:"" help:"Write a message to the console without format interpretation"`
	View    ViewCmd    `cmd:"" help:"Browse a console log"`
	Archive ArchiveCmd `cmd:"" help:"Compress a console log and truncate it"`
	Bundle  BundleCmd  `cmd:"" help:"Pack console logs into a compressed cpio bundle"`
}

// PrintCmd sends a message through the console output adapter
type PrintCmd struct {
	Message   []string `arg:"" help:"Message words, joined with single spaces"`
	Debug     bool     `short:"d" help:"Send as debug output"`
	NoNewline bool     `short:"n" help:"Do not append a newline"`
	Level     int      `short:"l" default:"-1" help:"Debug level (0 disables debug output; -1 uses config)"`
	Device    string   `help:"Console device to write to, or 'auto' to probe /dev/console, /dev/tty1, /dev/ttyS0"`
	Redirect  bool     `short:"r" help:"Also redirect stdout/stderr to the console device (implies --device=auto when unset)"`
	Log       string   `type:"path" help:"Append output to this console log"`
	Config    string   `type:"path" help:"Path to TOML config file"`
}

// ViewCmd opens the log viewer
type ViewCmd struct {
	Path   string `arg:"" type:"existingfile" help:"Console log (plain, .gz, .zst or .xz)"`
	Follow bool   `short:"f" help:"Reload the log continuously"`
}

// ArchiveCmd compresses a console log next to itself
type ArchiveCmd struct {
	Path        string `arg:"" type:"existingfile" help:"Console log to archive"`
	Compression string `short:"c" help:"Compression algorithm (default from config)"`
	Config      string `type:"path" help:"Path to TOML config file"`
}

// BundleCmd packs console logs into a single archive
type BundleCmd struct {
	Output      string   `short:"o" required:"" help:"Output path for the bundle"`
	Files       []string `arg:"" type:"existingfile" help:"Logs to include"`
	Compression string   `short:"c" help:"Compression algorithm (default from config)"`
	Config      string   `type:"path" help:"Path to TOML config file"`
}
