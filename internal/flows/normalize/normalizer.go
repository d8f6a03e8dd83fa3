package normalize

import (
	"github.com/bytedance/sonic"
)

// decoder keeps JSON numbers as json.Number
var decoder = sonic.Config{UseNumber: true}.Froze()

// Decode parses a flow response body. Numbers decode to json.Number.
func Decode(data []byte) (interface{}, error) {
	var body interface{}
	if err := decoder.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// matcher returns the message for one envelope shape
type matcher func(body map[string]interface{}) (string, bool)

type strategy struct {
	name  string
	match matcher
}

// strategies is evaluated in order; first match wins
var strategies = []strategy{
	{name: "nested-output", match: nestedOutput},
	{name: "direct-output", match: directOutput},
	{name: "scan-outputs", match: scanOutputs},
	{name: "message", match: messageField},
	{name: "result", match: resultField},
	{name: "text", match: topLevelString("text")},
	{name: "content", match: topLevelString("content")},
}

// Strategies returns the strategy names in evaluation order
func Strategies() []string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.name
	}
	return names
}

// Extract returns the best message found in body
func Extract(body interface{}) (string, bool) {
	msg, _, ok := Match(body)
	return msg, ok
}

// Match is Extract that also reports which strategy matched
func Match(body interface{}) (msg string, name string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			msg, name, ok = "", "", false
		}
	}()

	obj, isObj := body.(map[string]interface{})
	if !isObj {
		return "", "", false
	}

	for _, s := range strategies {
		if text, found := s.match(obj); found {
			return text, s.name, true
		}
	}
	return "", "", false
}

// ExtractJSON decodes data and extracts the message from it
func ExtractJSON(data []byte) (string, bool) {
	body, err := Decode(data)
	if err != nil {
		return "", false
	}
	return Extract(body)
}

func nestedOutput(body map[string]interface{}) (string, bool) {
	first, ok := firstOutput(body)
	if !ok {
		return "", false
	}
	inner, ok := first["outputs"].([]interface{})
	if !ok {
		return "", false
	}
	for _, item := range inner {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if text, ok := resultsMessageText(obj); ok {
			return text, true
		}
	}
	return "", false
}

func directOutput(body map[string]interface{}) (string, bool) {
	first, ok := firstOutput(body)
	if !ok {
		return "", false
	}
	return resultsMessageText(first)
}

func scanOutputs(body map[string]interface{}) (string, bool) {
	outputs, ok := body["outputs"].([]interface{})
	if !ok {
		return "", false
	}
	for _, item := range outputs {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if text, ok := nonEmptyString(obj["message"]); ok {
			return text, true
		}
		if text, ok := nonEmptyString(obj["text"]); ok {
			return text, true
		}
	}
	return "", false
}

func messageField(body map[string]interface{}) (string, bool) {
	switch msg := body["message"].(type) {
	case string:
		return nonEmptyString(msg)
	case map[string]interface{}:
		if text, ok := nonEmptyString(msg["text"]); ok {
			return text, true
		}
		if data, ok := msg["data"].(map[string]interface{}); ok {
			return nonEmptyString(data["text"])
		}
	}
	return "", false
}

func resultField(body map[string]interface{}) (string, bool) {
	switch result := body["result"].(type) {
	case string:
		return nonEmptyString(result)
	case map[string]interface{}:
		if text, ok := nonEmptyString(result["text"]); ok {
			return text, true
		}
		return nonEmptyString(result["message"])
	}
	return "", false
}

func topLevelString(key string) matcher {
	return func(body map[string]interface{}) (string, bool) {
		return nonEmptyString(body[key])
	}
}

// firstOutput returns outputs[0] when it is an object
func firstOutput(body map[string]interface{}) (map[string]interface{}, bool) {
	outputs, ok := body["outputs"].([]interface{})
	if !ok || len(outputs) == 0 {
		return nil, false
	}
	first, ok := outputs[0].(map[string]interface{})
	return first, ok
}

// resultsMessageText walks results.message.text
func resultsMessageText(obj map[string]interface{}) (string, bool) {
	results, ok := obj["results"].(map[string]interface{})
	if !ok {
		return "", false
	}
	message, ok := results["message"].(map[string]interface{})
	if !ok {
		return "", false
	}
	return nonEmptyString(message["text"])
}

func nonEmptyString(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
