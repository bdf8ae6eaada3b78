package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/JaggerJo/Prowl/encode"
	"github.com/JaggerJo/Prowl/tag"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.JSON && (cfg.Gz || cfg.Zst) {
		return fmt.Errorf("%w: -json cannot be combined with compression", cli.ErrUsage)
	}
	if cfg.Gz && cfg.Zst {
		return fmt.Errorf("%w: choose one of -z, -zstd", cli.ErrUsage)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		t, err := loadDoc(cc, file)
		if err != nil {
			return err
		}
		if cfg.JSON {
			d, err := tag.ToJSON(t)
			if err != nil {
				return fmt.Errorf("error rendering %s: %w", file, err)
			}
			d = append(d, '\n')
			if _, err := cc.Out.Write(d); err != nil {
				return err
			}
			continue
		}
		comp := encode.NoCompression
		if cfg.Gz {
			comp = encode.Gzip
		}
		if cfg.Zst {
			comp = encode.Zstd
		}
		if err := encode.Encode(t, cc.Out, encode.WithCompression(comp)); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}
