package application

import (
	"errors"
	"fmt"
)

var ErrConfiguration = errors.New("configuration error")
var ErrTransport = errors.New("transport error")
var ErrSchema = errors.New("schema error")
var ErrStorage = errors.New("storage error")

// SchemaError reports a well-formed response that lacks the expected fields.
// Payload holds the raw body for diagnostics.
type SchemaError struct {
	Reason  string
	Payload []byte
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected API response: %s: %s", e.Reason, e.Payload)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// CauseChain flattens err and everything it wraps into a list of messages,
// outermost first.
func CauseChain(err error) []string {
	var out []string
	queue := []error{err}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == nil {
			continue
		}
		out = append(out, cur.Error())
		switch u := cur.(type) {
		case interface{ Unwrap() error }:
			queue = append(queue, u.Unwrap())
		case interface{ Unwrap() []error }:
			queue = append(queue, u.Unwrap()...)
		}
	}
	return out
}
