package main

import (
	"io"

	"github.com/scott-cotton/cli"

	"github.com/JaggerJo/Prowl/encode"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		t, err := loadDoc(cc, file)
		if err != nil {
			return err
		}
		if err := encode.EncodeText(t, cc.Out, cfg.textOpts(cc.Out)...); err != nil {
			return err
		}
		if i < len(args)-1 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
