/*
 * xyz.go, part of qcio.
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

//XYZ text handling. The format is: a line with the atom count, a comment
//line, then one "symbol x y z" line per atom, coordinates in Angstrom.
//qcio embeds charge, multiplicity and identifiers on the comment line as
//qcio_key=value tokens; unrecognized comment tokens are preserved in the
//structure's extras.

package qcio

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	xyzKeyPrefix = "qcio_"
	xyzIDPrefix  = "qcio__identifiers_"
)

//ToXYZ returns the structure as an XYZ string with the given number of
//decimals per coordinate. A non-positive precision means XYZPrecision,
//which is enough to round-trip a float64. Coordinates are written in
//Angstrom; charge, multiplicity and identifiers go on the comment line.
func (s *Structure) ToXYZ(precision int) string {
	if precision <= 0 {
		precision = XYZPrecision
	}
	tokens := []string{
		fmt.Sprintf("%scharge=%d", xyzKeyPrefix, s.Charge),
		fmt.Sprintf("%smultiplicity=%d", xyzKeyPrefix, s.Multiplicity),
	}
	for _, kv := range identifierTokens(s.Identifiers) {
		tokens = append(tokens, xyzIDPrefix+kv)
	}
	tokens = append(tokens, commentExtras(s.Extras)...)
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", s.NAtoms())
	fmt.Fprintf(&b, "%s\n", strings.Join(tokens, " "))
	g := s.GeometryAngstrom()
	w := precision + 6
	for i, sym := range s.Symbols {
		c := g.Row(i)
		fmt.Fprintf(&b, "%-2s %*.*f %*.*f %*.*f\n", sym, w, precision, c[0], w, precision, c[1], w, precision, c[2])
	}
	return b.String()
}

//ToXYZMulti concatenates the XYZ representation of several structures
//into one multi-structure XYZ string.
func ToXYZMulti(structures []*Structure, precision int) string {
	var b strings.Builder
	for _, s := range structures {
		b.WriteString(s.ToXYZ(precision))
	}
	return b.String()
}

//commentExtras retrieves preserved comment tokens from a structure's
//extras. Deserialized trees hold them as []any rather than []string.
func commentExtras(extras map[string]any) []string {
	if extras == nil {
		return nil
	}
	switch com := extras[xyzCommentKey].(type) {
	case []string:
		return com
	case []any:
		out := make([]string, 0, len(com))
		for _, c := range com {
			if s, ok := c.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

//identifierTokens returns the non-empty identifier fields as key=value
//strings using the serialized field names.
func identifierTokens(ids *Identifiers) []string {
	if ids == nil {
		return nil
	}
	pairs := []struct{ key, val string }{
		{"name", ids.Name},
		{"name_IUPAC", ids.NameIUPAC},
		{"smiles", ids.Smiles},
		{"canonical_smiles", ids.CanonicalSmiles},
		{"canonical_smiles_program", ids.CanonicalSmilesProgram},
		{"canonical_explicit_hydrogen_smiles", ids.CanonicalExplicitHydrogenSmiles},
		{"inchi", ids.InChI},
		{"inchikey", ids.InChIKey},
		{"pubchem_cid", ids.PubChemCID},
	}
	var out []string
	for _, p := range pairs {
		if p.val != "" {
			out = append(out, p.key+"="+p.val)
		}
	}
	return out
}

//setIdentifier assigns a value to the identifier field with the given
//serialized name. Unknown keys are ignored and reported as false.
func setIdentifier(ids *Identifiers, key, val string) bool {
	switch key {
	case "name":
		ids.Name = val
	case "name_IUPAC":
		ids.NameIUPAC = val
	case "smiles":
		ids.Smiles = val
	case "canonical_smiles":
		ids.CanonicalSmiles = val
	case "canonical_smiles_program":
		ids.CanonicalSmilesProgram = val
	case "canonical_explicit_hydrogen_smiles":
		ids.CanonicalExplicitHydrogenSmiles = val
	case "inchi":
		ids.InChI = val
	case "inchikey":
		ids.InChIKey = val
	case "pubchem_cid":
		ids.PubChemCID = val
	default:
		return false
	}
	return true
}

//FromXYZ parses a single-structure XYZ string. Coordinates are read in
//Angstrom and stored in Bohr. qcio_charge, qcio_multiplicity and
//qcio__identifiers_* tokens on the comment line are honored; any other
//comment tokens end up in the structure's extras under "xyz_comments".
func FromXYZ(xyz string) (*Structure, error) {
	lines := strings.Split(xyz, "\n")
	if len(lines) < 2 {
		return nil, &PError{Format: "xyz", Message: "missing atom count line"}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, &PError{Format: "xyz", Message: "first line must be the atom count"}
	}
	if len(lines) < natoms+2 {
		return nil, &PError{Format: "xyz", Message: fmt.Sprintf("%d atoms declared but fewer lines present", natoms)}
	}
	s := Structure{Multiplicity: 1}
	ids := Identifiers{}
	hasIDs := false
	var comments []string
	for _, tok := range strings.Fields(lines[1]) {
		key, val, isKV := strings.Cut(tok, "=")
		switch {
		case isKV && strings.HasPrefix(key, xyzIDPrefix):
			if setIdentifier(&ids, strings.TrimPrefix(key, xyzIDPrefix), val) {
				hasIDs = true
			}
		case isKV && key == xyzKeyPrefix+"charge":
			s.Charge, err = strconv.Atoi(val)
			if err != nil {
				return nil, &PError{Format: "xyz", Message: "invalid charge: " + val}
			}
		case isKV && key == xyzKeyPrefix+"multiplicity":
			s.Multiplicity, err = strconv.Atoi(val)
			if err != nil {
				return nil, &PError{Format: "xyz", Message: "invalid multiplicity: " + val}
			}
		default:
			comments = append(comments, tok)
		}
	}
	if hasIDs {
		s.Identifiers = &ids
	}
	if comments != nil {
		s.Extras = map[string]any{xyzCommentKey: comments}
	}
	s.Symbols = make([]string, natoms)
	s.Geometry = make(Coords, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		fields := strings.Fields(lines[i+2])
		if len(fields) < 4 {
			return nil, &PError{Format: "xyz", Message: fmt.Sprintf("line %d ill formed", i+3)}
		}
		s.Symbols[i] = fields[0]
		for j := 1; j < 4; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, &PError{Format: "xyz", Message: fmt.Sprintf("line %d: bad coordinate %q", i+3, fields[j])}
			}
			s.Geometry = append(s.Geometry, v*A2Bohr)
		}
	}
	out, err := NewStructure(s)
	if err != nil {
		return nil, errDecorate(err, "FromXYZ")
	}
	return out, nil
}

//FromXYZMulti parses a multi-structure XYZ string into a list of
//structures. Blank lines between blocks are allowed.
func FromXYZMulti(xyz string) ([]*Structure, error) {
	lines := strings.Split(strings.TrimRight(xyz, "\n"), "\n")
	var structures []*Structure
	i := 0
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(lines[i]))
		if err != nil {
			return nil, &PError{Format: "xyz", Message: fmt.Sprintf("line %d: expected an atom count", i+1)}
		}
		if i+natoms+2 > len(lines) {
			return nil, &PError{Format: "xyz", Message: "truncated structure block"}
		}
		block := strings.Join(lines[i:i+natoms+2], "\n")
		s, err := FromXYZ(block)
		if err != nil {
			return nil, errDecorate(err, "FromXYZMulti")
		}
		structures = append(structures, s)
		i += natoms + 2
	}
	if len(structures) == 0 {
		return nil, &PError{Format: "xyz", Message: "no structures found"}
	}
	return structures, nil
}
