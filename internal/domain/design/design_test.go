package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDesign_Validate(t *testing.T) {
	room := Room{WidthMM: 2400, HeightMM: 2300, DepthMM: 600}

	tests := []struct {
		name    string
		design  Design
		wantErr bool
	}{
		{name: "empty design is fine", design: Design{Room: room}},
		{name: "valid item", design: Design{Room: room, Items: []PlacedItem{{ProductID: "frame-1000", Quantity: 1}}}},
		{name: "zero width", design: Design{Room: Room{HeightMM: 1, DepthMM: 1}}, wantErr: true},
		{name: "missing product", design: Design{Room: room, Items: []PlacedItem{{Quantity: 1}}}, wantErr: true},
		{name: "zero quantity", design: Design{Room: room, Items: []PlacedItem{{ProductID: "frame-1000"}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.design.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDesign)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDesign_Clone(t *testing.T) {
	d := &Design{
		ID:    "d1",
		Code:  "WCLONE00",
		Items: []PlacedItem{{ProductID: "frame-500", Quantity: 1}},
		Properties: Metadata{
			"camera": map[string]interface{}{"x": 0.0},
			"tags":   []interface{}{"a"},
		},
	}

	cp := d.Clone()
	cp.Items[0].Quantity = 99
	cp.Properties["note"] = "added"
	cp.Properties["camera"].(map[string]interface{})["x"] = 5.0
	cp.Properties["tags"].([]interface{})[0] = "b"

	assert.Equal(t, 1, d.Items[0].Quantity)
	assert.NotContains(t, d.Properties, "note")
	assert.Equal(t, 0.0, d.Properties["camera"].(map[string]interface{})["x"])
	assert.Equal(t, "a", d.Properties["tags"].([]interface{})[0])

	empty := (&Design{ID: "d2"}).Clone()
	assert.Nil(t, empty.Items)
	assert.Nil(t, empty.Properties)
}
