package types

import "encoding/json"

// Optional is a JSON field that distinguishes the three update intents of a
// PATCH body: absent (leave unchanged), explicit null (clear), and a value
// (set). encoding/json only calls UnmarshalJSON for fields present in the
// body, so Set stays false for absent fields.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true

	if string(data) == "null" {
		return nil
	}

	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}

	o.Valid = true
	return nil
}
