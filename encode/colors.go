package encode

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/signadot/tony-edit/ir"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	CommentColor ColorAttr = iota
	FieldColor
	ValueColor
	SepColor
	AnchorColor
	LiteralColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		able := Colorable{Type: t, Attr: CommentColor}
		colors.Map[able] = color.BlueString
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = FieldColor
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
		able.Attr = AnchorColor
		colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Type = ir.NumberType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Type = ir.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Type = ir.BoolType
	colors.Map[able] = color.CyanString

	able.Type = ir.StringType
	colors.Map[able] = color.GreenString
	able.Attr = LiteralColor
	colors.Map[able] = color.HiGreenString

	able.Type = ir.AliasType
	able.Attr = ValueColor
	colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()

	return colors
}

// AutoColors returns NewColors when f is a terminal, nil otherwise.
func AutoColors(f *os.File) *Colors {
	if f == nil {
		return nil
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return nil
	}
	return NewColors()
}

func colorDefault(s string, args ...any) string {
	return color.WhiteString(s, args...)
}

func (c *Colors) Color(t ir.Type, attr ColorAttr, s string) string {
	f, ok := c.Map[Colorable{Type: t, Attr: attr}]
	if !ok {
		f = c.Default
	}
	return f("%s", s)
}
