// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/gorilla/rpc/v2"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

// StaticService defines the stateless part of the API: converting between
// the value literal form and the wire form. It needs no runtime.
type StaticService struct{}

// NewStaticHTTPHandler returns the JSON-RPC handler for the static service.
func NewStaticHTTPHandler() (http.Handler, error) {
	server := rpc.NewServer()
	codec := cjson.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	if err := server.RegisterService(&StaticService{}, Name); err != nil {
		return nil, err
	}
	return server, nil
}

// EncodeValueArgs are the arguments to EncodeValue
type EncodeValueArgs struct {
	Value string `json:"value"`
}

// EncodeValueReply is the reply from EncodeValue
type EncodeValueReply struct {
	Bytes string `json:"bytes"`
}

// EncodeValue returns the wire form of a value literal as hex.
func (s *StaticService) EncodeValue(_ *http.Request, args *EncodeValueArgs, reply *EncodeValueReply) error {
	v, err := ParseVal(args.Value)
	if err != nil {
		return err
	}
	raw, err := MarshalVal(v)
	if err != nil {
		return err
	}
	reply.Bytes, err = formatting.Encode(formatting.Hex, raw)
	if err != nil {
		return fmt.Errorf("couldn't encode value as string: %w", err)
	}
	return nil
}

// DecodeValueArgs are the arguments to DecodeValue
type DecodeValueArgs struct {
	Bytes string `json:"bytes"`
}

// DecodeValueReply is the reply from DecodeValue
type DecodeValueReply struct {
	Value string `json:"value"`
}

// DecodeValue parses hex wire bytes back into the value literal form.
func (s *StaticService) DecodeValue(_ *http.Request, args *DecodeValueArgs, reply *DecodeValueReply) error {
	raw, err := formatting.Decode(formatting.Hex, args.Bytes)
	if err != nil {
		return fmt.Errorf("couldn't decode bytes: %w", err)
	}
	v, err := UnmarshalVal(raw)
	if err != nil {
		return err
	}
	reply.Value = FormatVal(v)
	return nil
}
