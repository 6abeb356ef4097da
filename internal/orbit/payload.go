package orbit

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Tag names a payload variant, e.g. "planet" or "electron".
type Tag string

// Payload carries the domain-specific fields of an entity.
type Payload interface {
	Tag() Tag
	ClonePayload() Payload
}

// PayloadDecoder rebuilds a payload from its JSON form.
type PayloadDecoder func(data json.RawMessage) (Payload, error)

var (
	decodersMu sync.RWMutex
	decoders   = map[Tag]PayloadDecoder{}
)

// RegisterPayload makes a payload tag decodable. Domain packages call it
// from init.
func RegisterPayload(tag Tag, dec PayloadDecoder) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	decoders[tag] = dec
}

// RegisteredTags lists decodable payload tags in sorted order.
func RegisteredTags() []Tag {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	out := make([]Tag, 0, len(decoders))
	for t := range decoders {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type payloadEnvelope struct {
	Tag  Tag             `json:"tag"`
	Data json.RawMessage `json:"data,omitempty"`
}

// MarshalPayload encodes p as {"tag": ..., "data": ...}. A nil payload
// encodes as JSON null.
func MarshalPayload(p Payload) ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(payloadEnvelope{Tag: p.Tag(), Data: data})
}

// UnmarshalPayload decodes the output of MarshalPayload.
func UnmarshalPayload(b []byte) (Payload, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	var env payloadEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	decodersMu.RLock()
	dec, ok := decoders[env.Tag]
	decodersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("orbit: unknown payload tag: %s", env.Tag)
	}
	return dec(env.Data)
}

// DecodeJSON is a PayloadDecoder for payloads that are plain JSON structs.
func DecodeJSON[T any, P interface {
	*T
	Payload
}]() PayloadDecoder {
	return func(data json.RawMessage) (Payload, error) {
		var v T
		if len(data) > 0 {
			if err := json.Unmarshal(data, &v); err != nil {
				return nil, err
			}
		}
		return P(&v), nil
	}
}
