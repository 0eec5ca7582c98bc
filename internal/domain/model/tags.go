package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Tags holds the optional error classification fields. Input files carry
// either null, a single string or an array of strings.
type Tags []string

// UnmarshalJSON accepts null, a string or an array of strings.
func (t *Tags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*t = nil
			return nil
		}
		*t = Tags{s}
		return nil
	case len(data) > 0 && data[0] == '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("tags must be strings: %w", err)
		}
		if len(list) == 0 {
			*t = nil
			return nil
		}
		*t = list
		return nil
	}
	return fmt.Errorf("tags must be null, a string or an array of strings, got %s", data)
}

// String joins the tags the way reports display them.
func (t Tags) String() string {
	return strings.Join(t, ", ")
}
