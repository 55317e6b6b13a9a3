package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/tony-edit/encode"
	"github.com/signadot/tony-edit/ir"
)

// Node wraps *ir.Node so %s renders the serialized form.
type Node struct{ *ir.Node }

func (n Node) String() string {
	x := n.Node
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(x, buf); err != nil {
		return fmt.Sprintf("[raw node] %v", x)
	}
	return buf.String()
}

// Logf writes a formatted message to stderr, rendering *ir.Node and
// plain JSON arguments in readable form.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			buf := bytes.NewBuffer(nil)
			if err := encode.Encode(x, buf); err != nil {
				args[i] = fmt.Sprintf("[raw node] %v", x)
				continue
			}
			args[i] = buf.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
