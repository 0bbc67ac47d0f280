package protocol_test

import (
	"encoding/json"
	"testing"

	"unoroom/internal/engine"
	"unoroom/internal/protocol"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	card := engine.Card{Kind: engine.KindNumber, Color: engine.ColorRed, Value: 5, ID: "c1"}
	env, err := protocol.NewEnvelope(protocol.MsgPlayCard, protocol.PlayCardMsg{Card: card})
	if err != nil {
		t.Fatalf("new envelope: %v", err)
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded protocol.Envelope
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != protocol.MsgPlayCard {
		t.Fatalf("type: got %s, want %s", decoded.Type, protocol.MsgPlayCard)
	}

	var play protocol.PlayCardMsg
	if err := json.Unmarshal(decoded.Payload, &play); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if play.Card != card {
		t.Fatalf("card: got %+v, want %+v", play.Card, card)
	}
}

func TestErrorMsgWireShape(t *testing.T) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Kind: "invalid_play", Message: "invalid play"})
	data, _ := json.Marshal(env)
	want := `{"type":"error","payload":{"kind":"invalid_play","message":"invalid play"}}`
	if string(data) != want {
		t.Fatalf("wire shape:\n got %s\nwant %s", data, want)
	}
}
