package events

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Codec serializes events for the broker.
type Codec interface {
	Encode(event Event) ([]byte, error)
	ContentType() string
}

// NewCodec returns the codec registered under name ("json" or "cbor").
func NewCodec(name string) (Codec, error) {
	switch name {
	case "json", "":
		return jsonCodec{}, nil
	case "cbor":
		encOptions := cbor.CoreDetEncOptions()
		// Status values go out as their text form, like in JSON.
		encOptions.TextMarshaler = cbor.TextMarshalerTextString
		encOptions.Time = cbor.TimeRFC3339Nano
		encMode, err := encOptions.EncMode()
		if err != nil {
			return nil, fmt.Errorf("cbor encoder: %w", err)
		}
		return cborCodec{encMode: encMode}, nil
	default:
		return nil, fmt.Errorf("unknown event encoding %q", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Encode(event Event) ([]byte, error) {
	return json.Marshal(event)
}

func (jsonCodec) ContentType() string { return "application/json" }

// cborCodec uses Core Deterministic Encoding: the same event always yields the same bytes.
type cborCodec struct {
	encMode cbor.EncMode
}

func (c cborCodec) Encode(event Event) ([]byte, error) {
	return c.encMode.Marshal(event)
}

func (cborCodec) ContentType() string { return "application/cbor" }
