/*
 * structure_test.go, part of qcio.
 *
 * Copyright 2024 The qcio developers.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package qcio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//water returns a water structure with geometry in Bohr.
func water(t *testing.T) *Structure {
	t.Helper()
	s, err := NewStructure(Structure{
		Symbols: []string{"O", "H", "H"},
		Geometry: Coords{
			0, 0, 0,
			0, 1.433, 0.953,
			0, -1.433, 0.953,
		},
	})
	require.NoError(t, err)
	return s
}

func TestNewStructureNormalizes(t *testing.T) {
	s, err := NewStructure(Structure{
		Symbols:  []string{"o", "h", "HE"},
		Geometry: make(Coords, 9),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"O", "H", "He"}, s.Symbols)
	assert.Equal(t, 1, s.Multiplicity, "absent multiplicity defaults to singlet")
}

func TestStructureValidation(t *testing.T) {
	base := Structure{
		Symbols:  []string{"O", "H"},
		Geometry: make(Coords, 6),
	}
	cases := []struct {
		name   string
		mutate func(*Structure)
	}{
		{"geometry length", func(s *Structure) { s.Geometry = s.Geometry[:4] }},
		{"unknown element", func(s *Structure) { s.Symbols = []string{"Xx", "H"} }},
		{"negative multiplicity", func(s *Structure) { s.Multiplicity = -1 }},
		{"bond out of range", func(s *Structure) { s.Connectivity = []Bond{{I: 0, J: 5, Order: 1}} }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := *base.Copy()
			c.mutate(&s)
			_, err := NewStructure(s)
			require.Error(t, err)
			var v *VError
			require.ErrorAs(t, err, &v)
		})
	}
}

func TestDistanceAndFormula(t *testing.T) {
	s := water(t)
	dBohr, err := s.Distance(0, 1, Bohr)
	require.NoError(t, err)
	assert.InDelta(t, 1.72101, dBohr, 1e-4)
	dA, err := s.Distance(0, 1, Angstrom)
	require.NoError(t, err)
	assert.InDelta(t, dBohr*Bohr2A, dA, 1e-12)
	_, err = s.Distance(0, 7, Bohr)
	assert.Error(t, err)

	assert.Equal(t, "H2O", s.Formula())
	assert.Equal(t, []int{8, 1, 1}, s.AtomicNumbers())
}

func TestReindex(t *testing.T) {
	s := water(t)
	s.Connectivity = []Bond{{I: 0, J: 1, Order: 1}, {I: 0, J: 2, Order: 1}}
	r, err := s.Reindex([]int{2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"H", "O", "H"}, r.Symbols)
	assert.Equal(t, s.Geometry.Row(2), r.Geometry.Row(0))
	//the O-H bonds follow the atoms to their new indices
	assert.ElementsMatch(t, []Bond{{I: 1, J: 2, Order: 1}, {I: 1, J: 0, Order: 1}}, r.Connectivity)

	_, err = s.Reindex([]int{0, 1})
	assert.Error(t, err)
	_, err = s.Reindex([]int{0, 1, 1})
	assert.Error(t, err)
}

func TestStructureJSONRoundTrip(t *testing.T) {
	s := water(t)
	s.Charge = -1
	s.Multiplicity = 2
	s.Connectivity = []Bond{{I: 0, J: 1, Order: 1.5}}
	s.Identifiers = &Identifiers{Name: "hydroxide-ish", Smiles: "[OH-]"}

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"connectivity":[[0,1,1.5]]`)

	var back Structure
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, s.Symbols, back.Symbols)
	assert.Equal(t, s.Geometry, back.Geometry)
	assert.Equal(t, s.Charge, back.Charge)
	assert.Equal(t, s.Multiplicity, back.Multiplicity)
	assert.Equal(t, s.Connectivity, back.Connectivity)
	assert.Equal(t, "hydroxide-ish", back.Identifiers.Name)
}

func TestStructureFlatGeometryAccepted(t *testing.T) {
	raw := []byte(`{"symbols": ["H", "H"], "geometry": [0, 0, 0, 0, 0, 1.4]}`)
	var s Structure
	require.NoError(t, json.Unmarshal(raw, &s))
	require.NoError(t, s.Validate())
	assert.Equal(t, Coords{0, 0, 0, 0, 0, 1.4}, s.Geometry)
	assert.Equal(t, 1, s.Multiplicity)
}

func TestCopyIsIndependent(t *testing.T) {
	s := water(t)
	s.Extras = map[string]any{"tag": "original"}
	c := s.Copy()
	c.Geometry[0] = 99
	c.Symbols[0] = "N"
	c.Extras["tag"] = "copy"
	assert.Equal(t, 0.0, s.Geometry[0])
	assert.Equal(t, "O", s.Symbols[0])
	assert.Equal(t, "original", s.Extras["tag"])
}
