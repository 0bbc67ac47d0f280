package protocol

import "encoding/json"

// Envelope frames every WebSocket message: an intent or update type plus
// its JSON-encoded payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope encodes payload and frames it under the given message type.
func NewEnvelope(typ string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: typ, Payload: data}, nil
}

// MustEnvelope is NewEnvelope for server-built payloads, where a marshal
// failure is a bug rather than bad input.
func MustEnvelope(typ string, payload any) Envelope {
	env, err := NewEnvelope(typ, payload)
	if err != nil {
		panic(err)
	}
	return env
}
