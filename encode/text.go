package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/JaggerJo/Prowl/tag"
)

// EncodeText writes an indented human-readable rendering of t. This is
// the diagnostic format behind `tagtool view`; the binary format is the
// wire form.
func EncodeText(t tag.Tag, w io.Writer, opts ...TextOption) error {
	cfg := newTextConfig(opts)
	if err := encodeText(t, w, cfg, 0, ""); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (cfg *textConfig) color(t tag.Type, attr ColorAttr, s string) string {
	if cfg.colors == nil {
		return s
	}
	return cfg.colors.Color(t, attr, s)
}

func encodeText(t tag.Tag, w io.Writer, cfg *textConfig, depth int, key string) error {
	if t == nil {
		t = tag.NewNull()
	}
	pad := strings.Repeat(" ", cfg.indent*depth)
	prefix := pad
	if key != "" {
		prefix += cfg.color(t.TagType(), KeyColor, key) + cfg.color(t.TagType(), SepColor, ": ")
	}

	switch x := t.(type) {
	case *tag.List:
		head := cfg.color(tag.ListType, TypeColor, fmt.Sprintf("List<%s>(%d)", x.ListType(), x.Len()))
		if _, err := fmt.Fprintf(w, "%s%s:", prefix, head); err != nil {
			return err
		}
		for i := 0; i < x.Len(); i++ {
			e, err := x.At(i)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			if err := encodeText(e, w, cfg, depth+1, ""); err != nil {
				return err
			}
		}
		return nil
	case *tag.Compound:
		head := cfg.color(tag.CompoundType, TypeColor, fmt.Sprintf("Compound(%d)", x.Len()))
		if _, err := fmt.Fprintf(w, "%s%s:", prefix, head); err != nil {
			return err
		}
		for i := 0; i < x.Len(); i++ {
			k, v := x.Entry(i)
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			if err := encodeText(v, w, cfg, depth+1, k); err != nil {
				return err
			}
		}
		return nil
	default:
		ty := t.TagType()
		name := cfg.color(ty, TypeColor, ty.String())
		val := cfg.color(ty, ValueColor, scalarText(t))
		if val == "" {
			_, err := fmt.Fprintf(w, "%s%s", prefix, name)
			return err
		}
		_, err := fmt.Fprintf(w, "%s%s %s", prefix, name, val)
		return err
	}
}

func scalarText(t tag.Tag) string {
	switch x := t.(type) {
	case *tag.Null:
		return ""
	case *tag.Byte:
		return fmt.Sprintf("%d", x.Value)
	case *tag.Short:
		return fmt.Sprintf("%d", x.Value)
	case *tag.Int:
		return fmt.Sprintf("%d", x.Value)
	case *tag.Long:
		return fmt.Sprintf("%d", x.Value)
	case *tag.Float:
		return fmt.Sprintf("%v", x.Value)
	case *tag.Double:
		return fmt.Sprintf("%v", x.Value)
	case *tag.String:
		return fmt.Sprintf("%q", x.Value)
	case *tag.ByteArray:
		const max = 32
		var b strings.Builder
		fmt.Fprintf(&b, "(%d bytes)", len(x.Value))
		n := len(x.Value)
		if n > max {
			n = max
		}
		if n > 0 {
			b.WriteString(" ")
			for _, v := range x.Value[:n] {
				fmt.Fprintf(&b, "%02x", v)
			}
			if len(x.Value) > max {
				b.WriteString("...")
			}
		}
		return b.String()
	}
	return ""
}
