package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/dragonsquest/engine/state"
	"github.com/nathoo/dragonsquest/types"
)

func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{Start: types.LocationCave},
		Locations: map[types.LocationID]types.LocationDef{
			types.LocationCave: {
				ID:      types.LocationCave,
				Name:    "Dark Cave",
				Options: []types.LocationID{types.LocationForest, types.LocationDragonLair, types.LocationLake},
			},
			types.LocationForest:     {ID: types.LocationForest, Name: "Forest"},
			types.LocationDragonLair: {ID: types.LocationDragonLair, Name: "Dragon's Lair"},
			types.LocationLake:       {ID: types.LocationLake, Name: "Lake of Dreams"},
			types.LocationVillage:    {ID: types.LocationVillage, Name: "Village"},
		},
	}
}

func TestDestination(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.LocationID
	}{
		{"exact id", "floresta", types.LocationForest},
		{"exact display name", "forest", types.LocationForest},
		{"display name mixed case", "Dragon's Lair", types.LocationDragonLair},
		{"article stripped", "the forest", types.LocationForest},
		{"id prefix", "drag", types.LocationDragonLair},
		{"display prefix", "for", types.LocationForest},
		{"word prefix", "dreams", types.LocationLake},
		{"word of multi-word name", "lair", types.LocationDragonLair},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := testDefs()
			s := state.NewState(defs)

			got, err := Destination(s, defs, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDestination_NotReachable(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)

	_, err := Destination(s, defs, "village")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "village", nf.Name)
}

func TestDestination_Empty(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)

	_, err := Destination(s, defs, "  ")
	assert.Error(t, err)
}

func TestDestination_Ambiguous(t *testing.T) {
	defs := testDefs()
	// "l" prefixes both "lago"/"Lake of Dreams" and "Lair".
	s := state.NewState(defs)

	_, err := Destination(s, defs, "l")
	var ae *AmbiguityError
	require.ErrorAs(t, err, &ae)
	assert.Len(t, ae.Candidates, 2)
	assert.EqualError(t, ae, "which l? (Dragon's Lair, Lake of Dreams)")
}

func TestDestination_UsesRuntimeOptions(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)
	state.SetLocationOptions(s, types.LocationCave, []types.LocationID{types.LocationForest})

	_, err := Destination(s, defs, "lair")
	assert.Error(t, err, "pruned destination should not resolve")
}
