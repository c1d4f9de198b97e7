// Package rpc defines the Connect services of the API: message types,
// procedure names, handler constructors and typed clients. Messages are plain
// structs carried as JSON.
package rpc

import (
	"encoding/json"

	"connectrpc.com/connect"
)

const codecName = "json"

// jsonCodec marshals plain Go structs with encoding/json. It replaces
// Connect's default JSON codec, which only accepts protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithJSON is the codec option every handler and client of this package uses.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSON()}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithJSON()}, opts...)
}
