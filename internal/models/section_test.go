package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionInputVisibilityDecoding(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		visible bool
	}{
		{"numeric one", `{"componentType":"FAQSection","isVisible":1}`, true},
		{"numeric zero", `{"componentType":"FAQSection","isVisible":0}`, false},
		{"boolean true", `{"componentType":"FAQSection","isVisible":true}`, true},
		{"boolean false", `{"componentType":"FAQSection","isVisible":false}`, false},
		{"string one", `{"componentType":"FAQSection","isVisible":"1"}`, true},
		{"other number", `{"componentType":"FAQSection","isVisible":2}`, false},
		{"missing", `{"componentType":"FAQSection"}`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var in SectionInput
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &in))
			assert.Equal(t, tc.visible, in.IsVisible)

			var section Section
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &section))
			assert.Equal(t, tc.visible, section.IsVisible)
		})
	}
}

func TestSectionContentDecoding(t *testing.T) {
	var in SectionInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"componentType": "FAQSection",
		"contentJson": "{\"title\":\"From JSON\"}",
		"content": {"title": "Legacy"},
		"theme": 2
	}`), &in))
	assert.Equal(t, "From JSON", in.Content["title"])
	assert.Equal(t, ThemeDark, in.Theme)

	require.NoError(t, json.Unmarshal([]byte(`{"componentType":"FAQSection","content":{"title":"Legacy"},"theme":9}`), &in))
	assert.Equal(t, "Legacy", in.Content["title"])
	assert.Equal(t, ThemeLight, in.Theme)

	require.NoError(t, json.Unmarshal([]byte(`{"componentType":"FAQSection","content":[1,2]}`), &in))
	assert.Empty(t, in.Content)
	assert.NotNil(t, in.Content)
}

func TestSectionEncodingRoundTrip(t *testing.T) {
	section := Section{
		ID:            3,
		PageID:        1,
		ComponentType: "CTASection",
		ComponentName: "Closing",
		Content:       map[string]interface{}{"title": "Start today"},
		OrderIndex:    2,
		IsVisible:     false,
		Theme:         ThemeDark,
	}

	data, err := json.Marshal(section)
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, false, wire["isVisible"])
	assert.Equal(t, `{"title":"Start today"}`, wire["contentJson"])

	var decoded Section
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, section, decoded)
}
