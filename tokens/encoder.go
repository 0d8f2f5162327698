package tokens

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// encoders memoizes tiktoken encodings process-wide. Building an encoding
// loads its vocabulary, which is far too expensive to repeat per call.
var (
	encMu    sync.Mutex
	encoders = make(map[string]*tiktoken.Tiktoken)
)

// encoderFor returns the memoized encoder for the given encoding name,
// building it on first use. Failures are not cached, so a transient init
// error does not disable the encoding for later calls.
func encoderFor(name string) (*tiktoken.Tiktoken, error) {
	encMu.Lock()
	defer encMu.Unlock()

	if enc, ok := encoders[name]; ok {
		return enc, nil
	}
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("init encoding %s: %w", name, err)
	}
	encoders[name] = enc
	return enc, nil
}
