package codec

import gojson "github.com/goccy/go-json"

// JSON is the wire codec used for gateway payloads.
type JSON struct{}

func NewJSON() JSON {
	return JSON{}
}

func (JSON) Marshal(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

func (JSON) Unmarshal(data []byte, v any) error {
	return gojson.Unmarshal(data, v)
}
