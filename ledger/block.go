package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HashLen is the length of a hex-encoded SHA-256 digest.
const HashLen = 64

// SentinelHash is the previous-hash placeholder of the genesis block.
var SentinelHash = strings.Repeat("0", HashLen)

// Block is one immutable entry in the chain. CurrentHash is computed
// once at creation and stored permanently; it is never recomputed
// after that (the linker folds the creation instant into the digest
// without storing it, so recomputation is impossible by construction).
type Block struct {
	Index       int     `json:"index"`
	Timestamp   int64   `json:"timestamp"`
	PrevHash    string  `json:"prev_hash"`
	Payload     Payload `json:"data"`
	CurrentHash string  `json:"current_hash"`
}

// blockEnvelope is the wire shape of a block. The payload travels as a
// tagged object under "data".
type blockEnvelope struct {
	Index       int             `json:"index"`
	Timestamp   int64           `json:"timestamp"`
	PrevHash    string          `json:"prev_hash"`
	Data        json.RawMessage `json:"data"`
	CurrentHash string          `json:"current_hash"`
}

// payloadTag carries the discriminator common to all payload variants.
type payloadTag struct {
	Type Kind `json:"type"`
}

// EncodePayload wraps a payload with its wire tag.
func EncodePayload(p Payload) (json.RawMessage, error) {
	fields, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal payload fields: %w", err)
	}
	if string(fields) == "{}" {
		return json.Marshal(payloadTag{Type: p.Kind()})
	}
	// Splice the tag in front of the variant fields.
	merged := make(json.RawMessage, 0, len(fields)+24)
	merged = append(merged, []byte(`{"type":"`+string(p.Kind())+`",`)...)
	merged = append(merged, fields[1:]...)
	return merged, nil
}

// DecodePayload turns a tagged payload object into its concrete
// variant. Unknown tags are rejected.
func DecodePayload(data json.RawMessage) (Payload, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("missing payload")
	}
	var tag payloadTag
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("could not read payload tag: %w", err)
	}
	switch tag.Type {
	case KindGenesis:
		var p Genesis
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("could not decode genesis payload: %w", err)
		}
		return p, nil
	case KindMint:
		var p Mint
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("could not decode mint payload: %w", err)
		}
		return p, nil
	case KindTransfer:
		var p Transfer
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("could not decode transfer payload: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown payload type %q", tag.Type)
	}
}

// MarshalJSON encodes the block with its payload as a tagged object.
func (b Block) MarshalJSON() ([]byte, error) {
	data, err := EncodePayload(b.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(blockEnvelope{
		Index:       b.Index,
		Timestamp:   b.Timestamp,
		PrevHash:    b.PrevHash,
		Data:        data,
		CurrentHash: b.CurrentHash,
	})
}

// UnmarshalJSON decodes the block and dispatches the payload on its
// wire tag.
func (b *Block) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("could not decode block envelope: %w", err)
	}
	payload, err := DecodePayload(env.Data)
	if err != nil {
		return fmt.Errorf("could not decode block payload: %w", err)
	}
	b.Index = env.Index
	b.Timestamp = env.Timestamp
	b.PrevHash = env.PrevHash
	b.Payload = payload
	b.CurrentHash = env.CurrentHash
	return nil
}
