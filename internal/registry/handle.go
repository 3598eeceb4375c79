package registry

import (
	"bytes"

	"github.com/google/uuid"
)

// Handle identifies a collection in a Registry
type Handle struct {
	id uuid.UUID
}

// NilHandle is the zero Handle. Create never returns it.
var NilHandle Handle

func newHandle() Handle {
	return Handle{id: uuid.New()}
}

// ParseHandle parses the string form produced by Handle.String
func ParseHandle(s string) (Handle, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NilHandle, err
	}
	return Handle{id: id}, nil
}

// String returns the canonical UUID text of the handle
func (h Handle) String() string {
	return h.id.String()
}

// Short returns the first eight hex digits, enough to tell piles apart in logs
func (h Handle) Short() string {
	return h.id.String()[:8]
}

// IsNil reports whether h is the zero handle
func (h Handle) IsNil() bool {
	return h.id == uuid.Nil
}

// less orders handles by their bytes; used to pick a lock order
func (h Handle) less(o Handle) bool {
	return bytes.Compare(h.id[:], o.id[:]) < 0
}
