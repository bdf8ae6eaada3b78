package encode

import (
	"github.com/fatih/color"

	"github.com/JaggerJo/Prowl/tag"
)

// ColorAttr selects which part of a rendered node a color applies to.
type ColorAttr int

const (
	TypeColor ColorAttr = iota
	KeyColor
	ValueColor
	SepColor
)

// Colorable keys the color map: one function per (tag type, attribute)
// pair.
type Colorable struct {
	Type tag.Type
	Attr ColorAttr
}

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func colorDefault(s string, args ...any) string { return s }

// NewColors returns the default palette.
func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range tag.Types() {
		colors.Map[Colorable{Type: t, Attr: TypeColor}] = color.RGB(74, 92, 138).SprintfFunc()
		colors.Map[Colorable{Type: t, Attr: KeyColor}] = color.RGB(196, 96, 16).SprintfFunc()
		colors.Map[Colorable{Type: t, Attr: SepColor}] = color.RGB(255, 0, 196).SprintfFunc()
	}

	able := Colorable{Attr: ValueColor}

	able.Type = tag.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	for _, t := range []tag.Type{tag.ByteType, tag.ShortType, tag.IntType, tag.LongType, tag.FloatType, tag.DoubleType} {
		able.Type = t
		colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	}

	able.Type = tag.StringType
	colors.Map[able] = color.GreenString

	able.Type = tag.ByteArrayType
	colors.Map[able] = color.CyanString

	return colors
}

// Color applies the configured function for (t, attr) to s.
func (c *Colors) Color(t tag.Type, attr ColorAttr, s string) string {
	f, ok := c.Map[Colorable{Type: t, Attr: attr}]
	if !ok {
		f = c.Default
	}
	if f == nil {
		return s
	}
	return f("%s", s)
}
