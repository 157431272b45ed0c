package parser

import (
	"testing"

	"github.com/refit/extension/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContainer(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name    string
		input   []string
		check   func(t *testing.T, c core.Container)
		wantErr bool
	}{
		{
			name: "chest with filters",
			input: []string{
				"3",                 // 0: id
				"10,10,0",           // 1: footprint min
				"11,10,0",           // 2: footprint max
				"false",             // 3: disabled
				"[ARMCHAIR,STATUE]", // 4: accepted types
				"[OAK]",             // 5: accepted materials
			},
			check: func(t *testing.T, c core.Container) {
				assert.Equal(t, uint32(3), c.ID)
				assert.Equal(t, core.GridPos{X: 10, Y: 10, Z: 0}, c.Footprint.Min)
				assert.Equal(t, core.GridPos{X: 11, Y: 10, Z: 0}, c.Footprint.Max)
				assert.False(t, c.Policy.Disabled)
				assert.Equal(t, []core.ObjectType{"ARMCHAIR", "STATUE"}, c.Policy.Types)
				assert.Equal(t, []core.Material{"OAK"}, c.Policy.Materials)
			},
		},
		{
			name:  "accept-all chest",
			input: []string{"4", "0,0,0", "0,0,0", "false", "[]", "[]"},
			check: func(t *testing.T, c core.Container) {
				assert.Nil(t, c.Policy.Types)
				assert.Nil(t, c.Policy.Materials)
				assert.True(t, c.Policy.Permits("ANYTHING", "ANY"))
			},
		},
		{
			name:    "error: insufficient fields",
			input:   []string{"3", "10,10,0"},
			wantErr: true,
		},
		{
			name:    "error: bad footprint",
			input:   []string{"3", "10,10", "11,10,0", "false", "[]", "[]"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := p.ParseContainer(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestParseZone(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name    string
		input   []string
		check   func(t *testing.T, z core.Zone)
		wantErr bool
	}{
		{
			name: "square stockpile",
			input: []string{
				"8",                             // 0: id
				"0",                             // 1: level
				"[[0,0],[6,0],[6,6],[0,6]]",     // 2: outline
				"false",                         // 3: disabled
				"[]",                            // 4: accepted types
				"[GRANITE,MARBLE]",              // 5: accepted materials
			},
			check: func(t *testing.T, z core.Zone) {
				assert.Equal(t, uint32(8), z.ID)
				assert.Equal(t, 0, z.Level)
				require.Len(t, z.Vertices, 4)
				assert.Equal(t, core.GridPos{X: 6, Y: 6, Z: 0}, z.Vertices[2])
				assert.Equal(t, []core.Material{"GRANITE", "MARBLE"}, z.Policy.Materials)
			},
		},
		{
			name:    "error: too few vertices",
			input:   []string{"8", "0", "[[0,0],[6,0]]", "false", "[]", "[]"},
			wantErr: true,
		},
		{
			name:    "error: outline not JSON",
			input:   []string{"8", "0", "garbage", "false", "[]", "[]"},
			wantErr: true,
		},
		{
			name:    "error: bad level",
			input:   []string{"8", "x", "[[0,0],[6,0],[6,6]]", "false", "[]", "[]"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, err := p.ParseZone(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, z)
		})
	}
}

func TestParsePolicy(t *testing.T) {
	p := newTestParser()

	id, policy, err := p.ParsePolicy([]string{"5", "true", "[BED]", "[]"})
	require.NoError(t, err)
	assert.Equal(t, uint32(5), id)
	assert.True(t, policy.Disabled)
	assert.Equal(t, []core.ObjectType{"BED"}, policy.Types)

	_, _, err = p.ParsePolicy([]string{"5", "true"})
	assert.Error(t, err)
}
