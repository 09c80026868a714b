package message

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func Encode(msg proto.Message) ([]byte, error) {
	return proto.Marshal(msg)
}

func Decode(data []byte, msg proto.Message) error {
	return proto.Unmarshal(data, msg)
}

// EncodeJSONDocument carries any JSON-marshalable value as a protobuf Struct.
func EncodeJSONDocument(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	doc := &structpb.Struct{}
	if err = doc.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("json document is not an object: %w", err)
	}
	return Encode(doc)
}

// DecodeJSONDocument is the inverse of EncodeJSONDocument.
func DecodeJSONDocument(data []byte, v any) error {
	doc := &structpb.Struct{}
	if err := Decode(data, doc); err != nil {
		return err
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
