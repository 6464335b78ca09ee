package dartsv1

import "encoding/json"

// Codec carries the plain Go messages of this package over connect as JSON.
// Register it on both ends with connect.WithCodec(dartsv1.Codec{}).
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
