package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	"github.com/JaggerJo/Prowl/encode"
	"github.com/JaggerJo/Prowl/tag"
)

func (cfg *FilterConfig) exprOpt(cc *cli.Context, a string) (any, error) {
	cfg.Expr = a
	return nil, nil
}

// filterEnv is the expression environment for one top-level entry.
type filterEnv struct {
	Key   string `expr:"key"`
	Type  string `expr:"type"`
	Value any    `expr:"value"`
}

func filter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		cfg.Filter.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: filter requires -e <expr>", cli.ErrUsage)
	}
	prog, err := expr.Compile(cfg.Expr, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return fmt.Errorf("error compiling %q: %w", cfg.Expr, err)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		t, err := loadDoc(cc, file)
		if err != nil {
			return err
		}
		c, ok := t.(*tag.Compound)
		if !ok {
			return fmt.Errorf("%s: filter requires a compound document, got %s", file, t.TagType())
		}
		res, err := filterCompound(c, prog)
		if err != nil {
			return fmt.Errorf("error filtering %s: %w", file, err)
		}
		if err := encode.EncodeText(res, cc.Out, cfg.textOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}

func filterCompound(c *tag.Compound, prog *vm.Program) (*tag.Compound, error) {
	res := tag.NewCompound()
	for i := 0; i < c.Len(); i++ {
		key, val := c.Entry(i)
		out, err := expr.Run(prog, filterEnv{
			Key:   key,
			Type:  val.TagType().String(),
			Value: exprValue(val),
		})
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		if out.(bool) {
			res.Set(key, val.Clone())
		}
	}
	return res, nil
}

// exprValue maps scalar tags onto plain Go values so expressions can
// compare them. Lists and compounds appear as their length.
func exprValue(t tag.Tag) any {
	switch v := t.(type) {
	case *tag.Byte:
		return int64(v.Value)
	case *tag.Short:
		return int64(v.Value)
	case *tag.Int:
		return int64(v.Value)
	case *tag.Long:
		return v.Value
	case *tag.Float:
		return float64(v.Value)
	case *tag.Double:
		return v.Value
	case *tag.String:
		return v.Value
	case *tag.ByteArray:
		return len(v.Value)
	case *tag.List:
		return v.Len()
	case *tag.Compound:
		return v.Len()
	default:
		return nil
	}
}
