package encode

import (
	"strings"
	"testing"

	"github.com/JaggerJo/Prowl/tag"
)

func TestEncodeText(t *testing.T) {
	meshes, err := tag.FromSlice([]tag.Tag{
		kv("Name", tag.FromString("cube")),
	})
	if err != nil {
		t.Fatalf("building fixture: %v", err)
	}
	root := kv(
		"Title", tag.FromString("scene"),
		"Version", tag.FromInt(3),
		"Nothing", tag.NewNull(),
		"Meshes", meshes,
	)

	var b strings.Builder
	if err := EncodeText(root, &b); err != nil {
		t.Fatalf("EncodeText: %v", err)
	}
	want := `Compound(4):
  Title: String "scene"
  Version: Int 3
  Nothing: Null
  Meshes: List<Compound>(1):
    Compound(1):
      Name: String "cube"
`
	if b.String() != want {
		t.Errorf("rendering mismatch:\ngot:\n%s\nwant:\n%s", b.String(), want)
	}
}

func TestEncodeText_Indent(t *testing.T) {
	root := kv("a", tag.FromInt(1))
	var b strings.Builder
	if err := EncodeText(root, &b, Indent(4)); err != nil {
		t.Fatalf("EncodeText: %v", err)
	}
	if !strings.Contains(b.String(), "\n    a: ") {
		t.Errorf("indent not applied:\n%s", b.String())
	}
}

func TestEncodeText_ByteArrayTruncation(t *testing.T) {
	data := make([]byte, 64)
	root := kv("px", tag.FromByteArray(data))
	var b strings.Builder
	if err := EncodeText(root, &b); err != nil {
		t.Fatalf("EncodeText: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "(64 bytes)") || !strings.Contains(out, "...") {
		t.Errorf("byte array rendering:\n%s", out)
	}
}

func TestEncodeText_ColorsApplyPerAttr(t *testing.T) {
	// A deterministic palette; the real ANSI palette depends on global
	// tty detection inside fatih/color.
	colors := &Colors{
		Default: func(s string, args ...any) string { return s },
		Map: map[Colorable]func(string, ...any) string{
			{Type: tag.IntType, Attr: KeyColor}: func(s string, args ...any) string {
				return "<k>" + args[0].(string) + "</k>"
			},
			{Type: tag.IntType, Attr: ValueColor}: func(s string, args ...any) string {
				return "<v>" + args[0].(string) + "</v>"
			},
		},
	}

	root := kv("a", tag.FromInt(1))
	var b strings.Builder
	if err := EncodeText(root, &b, WithColors(colors)); err != nil {
		t.Fatalf("EncodeText: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "<k>a</k>") {
		t.Errorf("key color not applied:\n%s", out)
	}
	if !strings.Contains(out, "<v>1</v>") {
		t.Errorf("value color not applied:\n%s", out)
	}
}
