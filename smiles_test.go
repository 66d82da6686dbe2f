/*
 * smiles_test.go, part of qcio.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//fakeBackend pretends every SMILES is molecular hydrogen.
type fakeBackend struct{}

func (fakeBackend) Name() string { return "fake" }

func (fakeBackend) StructureFromSmiles(smiles string) (*Structure, error) {
	return &Structure{
		Symbols:  []string{"H", "H"},
		Geometry: Coords{0, 0, 0, 0, 0, 1.4},
	}, nil
}

func (fakeBackend) SmilesFromStructure(s *Structure, explicitHydrogens bool) (string, error) {
	if explicitHydrogens {
		return "[HH]", nil
	}
	return "[H][H]", nil
}

func TestFromSmiles(t *testing.T) {
	RegisterChemBackend(nil)
	_, err := FromSmiles("[H][H]", 0)
	assert.ErrorIs(t, err, ErrNoChemBackend)

	RegisterChemBackend(fakeBackend{})
	defer RegisterChemBackend(nil)

	s, err := FromSmiles("[H][H]", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"H", "H"}, s.Symbols)
	assert.Equal(t, 1, s.Multiplicity)
	require.NotNil(t, s.Identifiers)
	assert.Equal(t, "[H][H]", s.Identifiers.Smiles)
	assert.Equal(t, "[H][H]", s.Identifiers.CanonicalSmiles)
	assert.Equal(t, "fake", s.Identifiers.CanonicalSmilesProgram)

	triplet, err := FromSmiles("[H][H]", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, triplet.Multiplicity)

	smiles, err := s.ToSmiles(true)
	require.NoError(t, err)
	assert.Equal(t, "[HH]", smiles)
}
