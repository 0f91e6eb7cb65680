package audio

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message types of the control protocol.
const (
	MsgManualTrigger = "manual-trigger"
	MsgGetState      = "get-state"
	MsgTriggerChange = "trigger-change"
	MsgState         = "state"
)

// Message is the wire form of control requests and notices.
type Message struct {
	Type  string    `json:"type"`
	Value *bool     `json:"value,omitempty"`
	State *Snapshot `json:"state,omitempty"`
}

// DecodeMessage parses an inbound control message.
func DecodeMessage(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode message: %w", err)
	}
	switch m.Type {
	case "getState":
		m.Type = MsgGetState
	case MsgGetState:
	case MsgManualTrigger:
		if m.Value == nil {
			return m, errors.New("manual-trigger message without value")
		}
	default:
		return m, fmt.Errorf("unknown message type %q", m.Type)
	}
	return m, nil
}

// Message returns the wire form of n.
func (n Notice) Message() Message {
	switch n.Kind {
	case NoticeGateChanged:
		gate := n.Gate
		return Message{Type: MsgTriggerChange, Value: &gate}
	case NoticeState:
		state := n.State
		return Message{Type: MsgState, State: &state}
	default:
		return Message{Type: n.Kind.String()}
	}
}

// Apply delivers an inbound control message.
func (b *Bridge) Apply(m Message) error {
	switch m.Type {
	case MsgManualTrigger:
		if m.Value == nil {
			return errors.New("manual-trigger message without value")
		}
		b.SetManualOverride(*m.Value)
	case MsgGetState, "getState":
		b.RequestStateSnapshot()
	default:
		return fmt.Errorf("cannot apply message type %q", m.Type)
	}
	return nil
}
