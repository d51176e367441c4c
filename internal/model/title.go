package model

import (
	"encoding/json"
	"strings"
)

// DisplayTitle absorbs the three shapes the upstream pipeline emits for a
// title field: a plain string, a list of strings, or an object carrying its
// own "title" key. Coercion happens once, at decode time.
type DisplayTitle struct {
	value string
}

// NewDisplayTitle wraps a plain string title.
func NewDisplayTitle(s string) DisplayTitle {
	return DisplayTitle{value: strings.TrimSpace(s)}
}

// String returns the coerced display string, empty when no title was present.
func (t DisplayTitle) String() string {
	return t.value
}

// IsZero reports whether no usable title was decoded.
func (t DisplayTitle) IsZero() bool {
	return t.value == ""
}

func (t DisplayTitle) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

func (t *DisplayTitle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.value = strings.TrimSpace(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		for _, item := range list {
			if item = strings.TrimSpace(item); item != "" {
				t.value = item
				return nil
			}
		}
		t.value = ""
		return nil
	}

	var titled struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &titled); err == nil {
		t.value = strings.TrimSpace(titled.Title)
		return nil
	}

	// Unknown shape degrades to no title rather than failing the decode.
	t.value = ""
	return nil
}
