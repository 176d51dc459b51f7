package lusha

import "encoding/json"

// firstArray extracts the first JSON array found in body: the body itself
// when it is a bare array, otherwise the first of the candidate keys that
// holds an array. The Lusha API has shipped all of these shapes across
// versions, so decoding probes them explicitly rather than pinning one.
func firstArray(body []byte, keys ...string) []json.RawMessage {
	var bare []json.RawMessage
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil
	}

	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err == nil {
			return arr
		}
	}
	return nil
}
