package codec

import (
	"github.com/AndrewDonelson/zipstore/internal/variant"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgPack is a compact binary codec using MessagePack encoding. Engine
// values survive a round trip.
type MsgPack struct{}

// Marshal serializes v to MessagePack bytes.
func (MsgPack) Marshal(v any) ([]byte, error) {
	if variant.IsStructured(v) || variant.IsEngineType(v) {
		v = variant.ToTagged(v)
	}
	return msgpack.Marshal(v)
}

// Unmarshal deserializes MessagePack bytes into v. When v is a *any the
// decoded tree has its engine values revived.
func (MsgPack) Unmarshal(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return err
	}
	if p, ok := v.(*any); ok {
		*p = variant.FromTagged(*p)
	}
	return nil
}

// Name returns "msgpack".
func (MsgPack) Name() string { return "msgpack" }
