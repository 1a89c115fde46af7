package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload of e as T. Events published in process
// carry T or *T already; any other shape, such as a map decoded from JSON, is
// converted with a JSON round trip.
func DecodePayload[T any](e Event) (T, error) {
	switch p := e.Payload.(type) {
	case T:
		return p, nil
	case *T:
		if p != nil {
			return *p, nil
		}
	}

	var out T
	if e.Payload == nil {
		return out, fmt.Errorf("%s: %s has no payload", ErrMsgDecodePayload, e.Type)
	}
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return out, fmt.Errorf("%s: %s: %w", ErrMsgDecodePayload, e.Type, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("%s: %s: %w", ErrMsgDecodePayload, e.Type, err)
	}
	return out, nil
}
