/*
 * structure.go, part of qcio.
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
	"fmt"

	"gonum.org/v1/gonum/floats"
)

//Identifiers are optional names for a structure. All fields may be empty.
type Identifiers struct {
	Name                            string         `json:"name,omitempty"`
	NameIUPAC                       string         `json:"name_IUPAC,omitempty"`
	Smiles                          string         `json:"smiles,omitempty"`
	CanonicalSmiles                 string         `json:"canonical_smiles,omitempty"`
	CanonicalSmilesProgram          string         `json:"canonical_smiles_program,omitempty"`
	CanonicalExplicitHydrogenSmiles string         `json:"canonical_explicit_hydrogen_smiles,omitempty"`
	InChI                           string         `json:"inchi,omitempty"`
	InChIKey                        string         `json:"inchikey,omitempty"`
	PubChemCID                      string         `json:"pubchem_cid,omitempty"`
	Extras                          map[string]any `json:"extras,omitempty"`
}

//Bond is one entry of a structure's connectivity: the indices of the two
//bonded atoms and the bond order. The serialized form is the triple
//[i, j, order].
type Bond struct {
	I, J  int
	Order float64
}

func (b Bond) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{float64(b.I), float64(b.J), b.Order})
}

func (b *Bond) UnmarshalJSON(data []byte) error {
	var t []float64
	if err := json.Unmarshal(data, &t); err != nil || len(t) != 3 {
		return &PError{Format: "json", Message: "a bond must be an [i, j, order] triple"}
	}
	b.I, b.J, b.Order = int(t[0]), int(t[1]), t[2]
	return nil
}

//Structure is a 3D arrangement of atoms: the physical subject of a
//calculation. Geometry is flat Cartesian coordinates in Bohr, three
//values per atom, serialized as a nested [n][3] array.
//
//Structures are not modified after construction. Use Copy, Reindex or
//WithIdentifiers to derive changed values; several specs and results may
//share one Structure.
type Structure struct {
	Symbols      []string       `json:"symbols"`
	Geometry     Coords         `json:"geometry"`
	Charge       int            `json:"charge,omitempty"`
	Multiplicity int            `json:"multiplicity,omitempty"`
	Connectivity []Bond         `json:"connectivity,omitempty"`
	Identifiers  *Identifiers   `json:"identifiers,omitempty"`
	Extras       map[string]any `json:"extras,omitempty"`
}

//xyzCommentKey is the extras key carrying XYZ comment tokens that are
//not qcio metadata, so they survive an XYZ round trip.
const xyzCommentKey = "xyz_comments"

//NewStructure validates and normalizes s and returns an independent
//copy. Symbols are brought to canonical element capitalization; a zero
//multiplicity (the unset value) becomes 1. Mismatched geometry length,
//unknown elements and negative multiplicities are validation errors.
func NewStructure(s Structure) (*Structure, error) {
	n := s.Copy()
	for i, sym := range n.Symbols {
		t, err := normalizeSymbol(sym)
		if err != nil {
			return nil, errDecorate(err, "NewStructure")
		}
		n.Symbols[i] = t
	}
	if n.Multiplicity == 0 {
		n.Multiplicity = 1
	}
	if err := n.Validate(); err != nil {
		return nil, errDecorate(err, "NewStructure")
	}
	return n, nil
}

//Validate checks the structure's invariants.
func (s *Structure) Validate() error {
	if len(s.Geometry) != 3*len(s.Symbols) {
		return vErr("geometry", fmt.Sprintf("%s: %d symbols vs %d values", ErrGeometryLength, len(s.Symbols), len(s.Geometry)))
	}
	for _, sym := range s.Symbols {
		if _, ok := symbolNumber[sym]; !ok {
			return vErr("symbols", fmt.Sprintf("%s: %q", ErrUnknownElement, sym))
		}
	}
	if s.Multiplicity < 1 {
		return vErr("multiplicity", ErrMultiplicity)
	}
	for _, b := range s.Connectivity {
		if b.I < 0 || b.J < 0 || b.I >= len(s.Symbols) || b.J >= len(s.Symbols) {
			return vErr("connectivity", fmt.Sprintf("bond (%d, %d) out of range", b.I, b.J))
		}
	}
	return nil
}

//UnmarshalJSON decodes and normalizes a structure: symbols are brought
//to canonical capitalization and an absent multiplicity defaults to 1.
func (s *Structure) UnmarshalJSON(data []byte) error {
	type alias Structure
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Structure(a)
	for i, sym := range s.Symbols {
		t, err := normalizeSymbol(sym)
		if err != nil {
			return err
		}
		s.Symbols[i] = t
	}
	if s.Multiplicity == 0 {
		s.Multiplicity = 1
	}
	return nil
}

//Copy returns a deep copy of the structure.
func (s *Structure) Copy() *Structure {
	if s == nil {
		return nil
	}
	n := &Structure{
		Charge:       s.Charge,
		Multiplicity: s.Multiplicity,
		Geometry:     s.Geometry.Copy(),
	}
	n.Symbols = append([]string(nil), s.Symbols...)
	n.Connectivity = append([]Bond(nil), s.Connectivity...)
	if s.Identifiers != nil {
		ids := *s.Identifiers
		ids.Extras = copyExtras(s.Identifiers.Extras)
		n.Identifiers = &ids
	}
	n.Extras = copyExtras(s.Extras)
	return n
}

//NAtoms returns the number of atoms.
func (s *Structure) NAtoms() int {
	return len(s.Symbols)
}

//Distance returns the distance between atoms i and j, in Bohr or
//Angstrom.
func (s *Structure) Distance(i, j int, unit LengthUnit) (float64, error) {
	if i < 0 || j < 0 || i >= s.NAtoms() || j >= s.NAtoms() {
		return 0, vErr("geometry", fmt.Sprintf("atom index (%d, %d) out of range", i, j))
	}
	d := floats.Distance(s.Geometry.Row(i), s.Geometry.Row(j), 2)
	if unit == Angstrom {
		d *= Bohr2A
	}
	return d, nil
}

//GeometryAngstrom returns the geometry converted to Angstrom.
func (s *Structure) GeometryAngstrom() Coords {
	g := s.Geometry.Copy()
	floats.Scale(Bohr2A, g)
	return g
}

//AtomicNumbers returns the atomic number of each atom.
func (s *Structure) AtomicNumbers() []int {
	nums := make([]int, len(s.Symbols))
	for i, sym := range s.Symbols {
		nums[i] = symbolNumber[sym]
	}
	return nums
}

//Formula returns the molecular formula in the Hill system.
func (s *Structure) Formula() string {
	return hillFormula(s.Symbols)
}

//Reindex returns a new structure with atoms reordered so that atom i of
//the result is atom perm[i] of the receiver. Connectivity indices are
//remapped accordingly. perm must be a permutation of 0..n-1. Consistent
//atom ordering is what RMSD-style comparisons between two structures
//need.
func (s *Structure) Reindex(perm []int) (*Structure, error) {
	n := s.NAtoms()
	if len(perm) != n {
		return nil, vErr("symbols", fmt.Sprintf("permutation length %d for %d atoms", len(perm), n))
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return nil, vErr("symbols", "not a permutation")
		}
		seen[p] = true
	}
	inv := make([]int, n)
	for i, p := range perm {
		inv[p] = i
	}
	out := s.Copy()
	for i, p := range perm {
		out.Symbols[i] = s.Symbols[p]
		copy(out.Geometry[3*i:3*i+3], s.Geometry.Row(p))
	}
	for k, b := range s.Connectivity {
		out.Connectivity[k] = Bond{I: inv[b.I], J: inv[b.J], Order: b.Order}
	}
	return out, nil
}

//WithIdentifiers returns a copy of the structure with the given
//identifiers attached.
func (s *Structure) WithIdentifiers(ids Identifiers) *Structure {
	n := s.Copy()
	n.Identifiers = &ids
	return n
}
