package objpack

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
)

// Transformer converts values to and from their raw byte representation.
// Unmarshal(Marshal(x)) must reconstruct a value equivalent to x.
type Transformer interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var (
	Gob      Transformer = gobTransformer{}
	MsgPack  Transformer = msgpackTransformer{}
	ProtoBuf Transformer = protoTransformer{}
)

// Transformers maps transformer names to implementations.
var Transformers = map[string]Transformer{
	Gob.Name():      Gob,
	MsgPack.Name():  MsgPack,
	ProtoBuf.Name(): ProtoBuf,
}

type gobTransformer struct{}

func (gobTransformer) Name() string { return "gob" }

func (gobTransformer) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gobTransformer) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

type msgpackTransformer struct{}

func (msgpackTransformer) Name() string { return "msgpack" }

func (msgpackTransformer) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (msgpackTransformer) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

type protoTransformer struct{}

func (protoTransformer) Name() string { return "protobuf" }

func (protoTransformer) Marshal(v any) ([]byte, error) {
	m, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("%T is not a proto.Message", v)
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(m)
}

func (protoTransformer) Unmarshal(data []byte, v any) error {
	m, ok := v.(proto.Message)
	if !ok {
		return fmt.Errorf("%T is not a proto.Message", v)
	}
	return proto.Unmarshal(data, m)
}
