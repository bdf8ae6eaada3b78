package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/JaggerJo/Prowl/encode"
	"github.com/JaggerJo/Prowl/tag"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a tag path", cli.ErrUsage)
	}
	path := args[0]
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		t, err := loadDoc(cc, file)
		if err != nil {
			return err
		}
		sub, err := tag.GetPath(t, path)
		if err != nil {
			return fmt.Errorf("error querying %s with %q: %w", file, path, err)
		}
		if err := encode.EncodeText(sub, cc.Out, cfg.textOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}
