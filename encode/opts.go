package encode

import "github.com/signadot/tony-edit/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// Preserve enables byte-exact replay of unmodified spans when the encoded
// tree still carries its original source.
func Preserve(v bool) EncodeOption {
	return func(es *EncState) { es.preserve = v }
}

func EncodeComments(v bool) EncodeOption {
	return func(es *EncState) { es.comments = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c != nil {
			es.Color = c.Color
		}
	}
}
