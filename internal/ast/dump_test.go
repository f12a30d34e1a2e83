package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaRolesetExtractsDotAttrs(t *testing.T) {
	m := &Meta{Attrs: map[string]string{".lead": "", "source": "python"}}
	m.Roleset()
	assert.ElementsMatch(t, []string{"lead"}, m.Roles)
}

func TestDumpRoundTripsShape(t *testing.T) {
	doc := &Document{
		Children: []Node{
			&Section{
				Level: 2,
				Meta:  &Meta{AnchorID: "child-id"},
				Title: []Node{&Text{Value: "Child"}},
			},
		},
	}
	out, err := Dump(doc)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &generic))
	assert.Equal(t, "Document", generic["type"])

	children := generic["children"].([]interface{})
	require.Len(t, children, 1)
	section := children[0].(map[string]interface{})
	assert.Equal(t, "Section", section["type"])
	assert.Equal(t, float64(2), section["level"])
	meta := section["meta"].(map[string]interface{})
	assert.Equal(t, "child-id", meta["anchorId"])
}
