package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/JaggerJo/Prowl/encode"
	"github.com/JaggerJo/Prowl/tag"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %d", cli.ErrUsage, len(args))
	}
	a, err := loadDoc(cc, args[0])
	if err != nil {
		return err
	}
	b, err := loadDoc(cc, args[1])
	if err != nil {
		return err
	}
	if tag.Equal(a, b) {
		return nil
	}
	at, err := renderText(a)
	if err != nil {
		return err
	}
	bt, err := renderText(b)
	if err != nil {
		return err
	}
	dmp := diffmatchpatch.New()
	lineA, lineB, lines := dmp.DiffLinesToChars(at, bt)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(lineA, lineB, false), lines)
	if _, err := io.WriteString(cc.Out, dmp.DiffPrettyText(diffs)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

func renderText(t tag.Tag) (string, error) {
	var b strings.Builder
	if err := encode.EncodeText(t, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
