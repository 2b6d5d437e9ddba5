// Package telegram provides typed, immutable representations of Telegram Bot
// API objects together with their wire-format JSON encoding and decoding.
//
// Every entity is a value: all fields are set by a constructor or by a
// Decoder, and nothing can be reassigned afterwards. Accessors that expose
// maps or slices return copies. Entities compare with Equal over the fields
// that identify them on the Bot API side, and Hash is consistent with Equal.
// Keys a payload carries that this package does not know about survive
// decoding in an extension bag reachable through Extra; they never take part
// in equality.
package telegram

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

// ErrMissingField is wrapped by Decoder methods when a payload lacks a
// required key.
var ErrMissingField = errors.New("missing required field")

// rawObject is a partially decoded JSON object. Decoding an entity pops the
// keys it understands; whatever remains becomes the extension bag.
type rawObject map[string]json.RawMessage

func parseObject(data []byte) (rawObject, error) {
	var obj rawObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	return obj, nil
}

// require decodes obj[key] into dst and removes the key. The entity name is
// only used to build a useful error.
func (o rawObject) require(entity, key string, dst any) error {
	raw, ok := o[key]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrMissingField, entity, key)
	}
	delete(o, key)
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s.%s: %w", entity, key, err)
	}
	return nil
}

// optional decodes obj[key] into dst if the key is present and removes it.
func (o rawObject) optional(entity, key string, dst any) error {
	raw, ok := o[key]
	if !ok {
		return nil
	}
	delete(o, key)
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s.%s: %w", entity, key, err)
	}
	return nil
}

// object pops a nested JSON object. The second return reports presence.
func (o rawObject) object(entity, key string) (rawObject, bool, error) {
	raw, ok := o[key]
	if !ok {
		return nil, false, nil
	}
	delete(o, key)
	nested, err := parseObject(raw)
	if err != nil {
		return nil, false, fmt.Errorf("%s.%s: %w", entity, key, err)
	}
	return nested, true, nil
}

// objects pops an array of nested JSON objects.
func (o rawObject) objects(entity, key string) ([]rawObject, bool, error) {
	raw, ok := o[key]
	if !ok {
		return nil, false, nil
	}
	delete(o, key)
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("%s.%s: %w", entity, key, err)
	}
	nested := make([]rawObject, 0, len(items))
	for i, item := range items {
		obj, err := parseObject(item)
		if err != nil {
			return nil, false, fmt.Errorf("%s.%s[%d]: %w", entity, key, i, err)
		}
		nested = append(nested, obj)
	}
	return nested, true, nil
}

// extra decodes every key left after the known ones were popped.
func (o rawObject) extra() map[string]any {
	if len(o) == 0 {
		return nil
	}
	bag := make(map[string]any, len(o))
	for key, raw := range o {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			// Keys the entity does not know about are carried on a
			// best-effort basis; an undecodable one keeps its raw text.
			v = string(raw)
		}
		bag[key] = v
	}
	return bag
}

// copyExtra is what Extra accessors hand out so stored state stays private.
func copyExtra(bag map[string]any) map[string]any {
	if bag == nil {
		return nil
	}
	return maps.Clone(bag)
}

// mergeExtra folds the extension bag back into a marshaled entity so that a
// decode of the result sees the same unknown keys. Known fields win on
// collision.
func mergeExtra(data []byte, bag map[string]any) ([]byte, error) {
	if len(bag) == 0 {
		return data, nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	for key, v := range bag {
		if _, ok := out[key]; !ok {
			out[key] = v
		}
	}
	return json.Marshal(out)
}
