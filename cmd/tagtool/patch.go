package main

import (
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/JaggerJo/Prowl/encode"
	"github.com/JaggerJo/Prowl/tag"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	pd, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not read patch %q: %w", args[0], err)
	}
	p, err := jsonpatch.DecodePatch(pd)
	if err != nil {
		return fmt.Errorf("error decoding patch %s: %w", args[0], err)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		t, err := loadDoc(cc, file)
		if err != nil {
			return err
		}
		d, err := tag.ToJSON(t)
		if err != nil {
			return fmt.Errorf("error rendering %s: %w", file, err)
		}
		pd, err := p.Apply(d)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", file, err)
		}
		res, err := tag.FromJSON(pd)
		if err != nil {
			return fmt.Errorf("patch result for %s is not a tag document: %w", file, err)
		}
		if err := encode.Encode(res, cc.Out); err != nil {
			return err
		}
	}
	return nil
}
