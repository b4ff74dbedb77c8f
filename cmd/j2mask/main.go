// Command j2mask masks Jinja-style template syntax behind reversible
// placeholder tokens and restores the original text afterwards.
//
// Usage:
//
//	j2mask mask [FILE|DIR|-] [-o OUT] [--scheme hex|base26]
//	j2mask unmask [FILE|DIR|-] [-o OUT] [--strict]
//
// With no path, or with -, input is read from stdin and the result written
// to stdout. When the path is a directory, -o names an output directory and
// the input tree is mirrored into it file by file.
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	j2mask "github.com/KimNorgaard/go-j2mask"
	"github.com/KimNorgaard/go-j2mask/placeholder"
)

const version = "0.1.0"

// CLI defines the command-line interface for j2mask.
var CLI struct {
	Mask    MaskCmd    `cmd:"" help:"Replace template syntax with placeholder tokens"`
	Unmask  UnmaskCmd  `cmd:"" help:"Restore the original text behind placeholder tokens"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// MaskCmd masks a file, a directory tree, or stdin.
type MaskCmd struct {
	Path               string `arg:"" optional:"" default:"-" help:"File or directory to mask, or - for stdin"`
	Out                string `short:"o" type:"path" help:"Output file, or output directory when PATH is a directory (default: stdout)"`
	Scheme             string `default:"hex" enum:"hex,base26" help:"Placeholder encoding scheme (hex or base26)"`
	NoInlineStatements bool   `help:"Fail when a statement delimiter shares a line with other content"`
	NoBackslash        bool   `help:"Leave backslash-bearing string literals unmasked"`
}

func (c *MaskCmd) Run() error {
	scheme, err := placeholder.ParseScheme(c.Scheme)
	if err != nil {
		return err
	}
	opts := []j2mask.Option{
		j2mask.WithScheme(scheme),
		j2mask.AllowInlineStatements(!c.NoInlineStatements),
		j2mask.ProtectBackslash(!c.NoBackslash),
	}
	return process(c.Path, c.Out, func(data []byte) ([]byte, error) {
		return j2mask.Mask(data, opts...)
	})
}

// UnmaskCmd restores a file, a directory tree, or stdin.
type UnmaskCmd struct {
	Path   string `arg:"" optional:"" default:"-" help:"File or directory to unmask, or - for stdin"`
	Out    string `short:"o" type:"path" help:"Output file, or output directory when PATH is a directory (default: stdout)"`
	Strict bool   `help:"Fail on the first malformed placeholder instead of warning"`
}

func (c *UnmaskCmd) Run() error {
	return process(c.Path, c.Out, func(data []byte) ([]byte, error) {
		out, diags, err := j2mask.Unmask(data, j2mask.Strict(c.Strict))
		for _, d := range diags {
			fmt.Fprintf(os.Stderr, "warning: invalid placeholder %s at offset %d left verbatim: %s\n",
				d.Token, d.Offset, d.Reason)
		}
		return out, err
	})
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Println("j2mask " + version)
	return nil
}

// process reads the input (stdin, single file, or directory tree), applies
// transform, and writes the result (stdout, file, or mirrored tree).
func process(path, out string, transform func([]byte) ([]byte, error)) error {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		res, err := transform(data)
		if err != nil {
			return err
		}
		return writeOut(out, res)
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		if out == "" {
			return fmt.Errorf("an output directory (-o) is required when processing a directory")
		}
		return processTree(path, out, transform)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	res, err := transform(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return writeOut(out, res)
}

// processTree mirrors the tree rooted at root into outRoot, applying the
// transform to every regular file. Each file is independent; a failure
// aborts the walk so partially transformed trees are visible to the caller.
func processTree(root, outRoot string, transform func([]byte) ([]byte, error)) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		target := filepath.Join(outRoot, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		res, err := transform(data)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		return os.WriteFile(target, res, 0o644)
	})
}

func writeOut(out string, data []byte) error {
	if out == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(out, data, 0o644)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("j2mask"),
		kong.Description("Reversible masking of Jinja-style template syntax"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
