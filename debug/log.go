package debug

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/signadot/cjdiff/encode"
	"github.com/signadot/cjdiff/ir"
)

var mu sync.Mutex

// Logf writes a debug line. *ir.Node arguments are rendered as compact
// JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		x, ok := args[i].(*ir.Node)
		if !ok || x == nil {
			continue
		}
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(x, buf, encode.EncodeWire(true)); err != nil {
			args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
			continue
		}
		args[i] = buf.String()
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(os.Stderr, msg, args...)
}
