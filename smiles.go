/*
 * smiles.go, part of qcio.
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

import "errors"

//ChemBackend generates 3D structures from SMILES strings and canonical
//SMILES from structures. qcio carries no cheminformatics engine of its
//own; programs that link one (OpenBabel, RDKit bindings, a web service)
//register it here and FromSmiles and ToSmiles start working.
type ChemBackend interface {
	//StructureFromSmiles builds a 3D structure, in Bohr, for the
	//molecule the SMILES describes.
	StructureFromSmiles(smiles string) (*Structure, error)
	//SmilesFromStructure perceives bonds in the structure and returns
	//its canonical SMILES. Hydrogens are kept explicit when
	//explicitHydrogens is true.
	SmilesFromStructure(s *Structure, explicitHydrogens bool) (string, error)
	//Name identifies the backend, for the canonical_smiles_program
	//identifier.
	Name() string
}

var chemBackend ChemBackend

//ErrNoChemBackend is returned by the SMILES functions when no backend
//has been registered.
var ErrNoChemBackend = errors.New("qcio: no chemistry backend registered")

//RegisterChemBackend installs the backend used by FromSmiles and
//ToSmiles. Call it once at program startup.
func RegisterChemBackend(b ChemBackend) {
	chemBackend = b
}

//FromSmiles builds a structure from a SMILES string using the
//registered backend, records the SMILES in the identifiers and sets the
//given multiplicity (zero means singlet).
func FromSmiles(smiles string, multiplicity int) (*Structure, error) {
	if chemBackend == nil {
		return nil, ErrNoChemBackend
	}
	s, err := chemBackend.StructureFromSmiles(smiles)
	if err != nil {
		return nil, err
	}
	canonical, err := chemBackend.SmilesFromStructure(s, false)
	if err != nil {
		return nil, err
	}
	n := s.WithIdentifiers(Identifiers{
		Smiles:                 smiles,
		CanonicalSmiles:        canonical,
		CanonicalSmilesProgram: chemBackend.Name(),
	})
	if multiplicity > 0 {
		n.Multiplicity = multiplicity
	}
	return NewStructure(*n)
}

//ToSmiles returns the canonical SMILES of the structure using the
//registered backend.
func (s *Structure) ToSmiles(explicitHydrogens bool) (string, error) {
	if chemBackend == nil {
		return "", ErrNoChemBackend
	}
	return chemBackend.SmilesFromStructure(s, explicitHydrogens)
}
