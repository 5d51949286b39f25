package storage

import (
	"testing"

	"github.com/poiesic/edusearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalResource(t *testing.T) {
	tests := []struct {
		name     string
		resource *core.Resource
		ordinal  uint64
	}{
		{
			name: "minimal resource",
			resource: &core.Resource{
				Id:       core.ID(1),
				Title:    "Basics of Database Management Systems",
				Category: core.CategoryEducation,
				Type:     core.TypeConcept,
				Level:    core.LevelBeginner,
			},
			ordinal: 0,
		},
		{
			name: "resource with every list",
			resource: &core.Resource{
				Id:           core.ID(2),
				Title:        "Smart Home Weather Station",
				Description:  "Build a real-time monitoring system using DHT11 and NodeMCU.",
				Category:     core.CategoryIoT,
				Type:         core.TypeProject,
				Level:        core.LevelIntermediate,
				Tags:         []string{"IoT", "Sensors", "NodeMCU", "WiFi", "Final Year", "Project Idea"},
				Hardware:     []string{"NodeMCU", "DHT11", "Jumper Wires"},
				LearningPath: []string{"HTTP Protocol", "Cloud Integration"},
			},
			ordinal: 7,
		},
		{
			name: "duplicate tags and unicode",
			resource: &core.Resource{
				Id:       core.ID(300),
				Title:    "Capteurs à ultrasons",
				Category: "Robotics",
				Type:     core.TypeHardware,
				Level:    core.LevelAdvanced,
				Tags:     []string{"Sensors", "Sensors", ""},
			},
			ordinal: 1 << 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalResource(tt.resource, tt.ordinal)
			require.NotEmpty(t, data)

			decoded, ordinal, err := UnmarshalResource(data)
			require.NoError(t, err)
			assert.Equal(t, tt.ordinal, ordinal)
			assert.Equal(t, tt.resource, decoded)
		})
	}
}

func TestUnmarshalResource_EmptyListsDecodeAsNil(t *testing.T) {
	r := &core.Resource{
		Id:       core.ID(4),
		Title:    "t",
		Category: core.CategoryEducation,
		Type:     core.TypeConcept,
		Level:    core.LevelBeginner,
		Hardware: []string{},
	}

	decoded, _, err := UnmarshalResource(MarshalResource(r, 0))
	require.NoError(t, err)
	assert.Nil(t, decoded.Hardware)
	assert.Empty(t, decoded.Tags)
}

func TestUnmarshalResource_Invalid(t *testing.T) {
	valid := MarshalResource(&core.Resource{
		Id:       core.ID(9),
		Title:    "Understanding MQTT Protocol",
		Category: core.CategoryIoT,
		Type:     core.TypeConcept,
		Level:    core.LevelAdvanced,
		Tags:     []string{"MQTT", "Protocols"},
	}, 3)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated", valid[:len(valid)/2]},
		{"trailing bytes", append(append([]byte{}, valid...), 0x01)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := UnmarshalResource(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}
