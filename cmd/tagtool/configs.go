package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/JaggerJo/Prowl/encode"
	"github.com/JaggerJo/Prowl/tag"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='force colored output'"`
	NoColor bool `cli:"name=no-color desc='disable colored output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// textOpts decides color based on flags, falling back to tty detection
// when the output is the terminal.
func (cfg *MainConfig) textOpts(w io.Writer) []encode.TextOption {
	if cfg.NoColor {
		return nil
	}
	if cfg.Color {
		// Forced color wins over fatih/color's tty detection, so piped
		// output stays colored.
		color.NoColor = false
		return []encode.TextOption{encode.WithColors(encode.NewColors())}
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return []encode.TextOption{encode.WithColors(encode.NewColors())}
	}
	return nil
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}

type FilterConfig struct {
	*MainConfig
	Expr   string
	Filter *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Patch *cli.Command
}

type ConvertConfig struct {
	JSON bool `cli:"name=json desc='write self-describing JSON'"`
	Gz   bool `cli:"name=z aliases=gzip desc='gzip-compress binary output'"`
	Zst  bool `cli:"name=zstd desc='zstd-compress binary output'"`

	*MainConfig
	Convert *cli.Command
}

// loadDoc reads one tag document from a file ("-" for stdin). Both the
// binary form (with or without compression) and the JSON form are
// accepted; JSON is sniffed by its leading '{'.
func loadDoc(cc *cli.Context, file string) (tag.Tag, error) {
	var r io.Reader
	if file == "-" {
		r = cc.In
		if r == nil {
			r = os.Stdin
		}
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", file, err)
	}
	if len(d) > 0 && (d[0] == '{' || d[0] == '[') {
		t, err := tag.FromJSON(d)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", file, err)
		}
		return t, nil
	}
	t, err := encode.Decode(bytes.NewReader(d))
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return t, nil
}
