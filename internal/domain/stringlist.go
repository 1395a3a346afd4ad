package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a list-valued field decoded by one explicit parser.
//
// Accepted encodings:
//
//	["a", "b"]
//	{"delimiter": ",", "value": "a, b"}
//
// The delimiter must be one of "," ";" "|". Anything else, including a bare
// string, is rejected. Items are trimmed and empty items dropped.
type StringList []string

var listDelimiters = map[string]bool{",": true, ";": true, "|": true}

type taggedList struct {
	Delimiter string `json:"delimiter"`
	Value     string `json:"value"`
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = StringList{}
		return nil
	}

	switch data[0] {
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("%w: list items must be strings", ErrInvalidInput)
		}
		*l = cleanItems(items)
		return nil
	case '{':
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		var tagged taggedList
		if err := dec.Decode(&tagged); err != nil {
			return fmt.Errorf("%w: tagged list must be {\"delimiter\", \"value\"}", ErrInvalidInput)
		}
		if !listDelimiters[tagged.Delimiter] {
			return fmt.Errorf("%w: unsupported list delimiter %q", ErrInvalidInput, tagged.Delimiter)
		}
		*l = cleanItems(strings.Split(tagged.Value, tagged.Delimiter))
		return nil
	default:
		return fmt.Errorf("%w: expected a string array or a tagged list object", ErrInvalidInput)
	}
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func cleanItems(items []string) StringList {
	out := make(StringList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
