/*
 * constants.go, part of qcio.
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

//This provides useful conversion factors and other constants.
//Geometries are stored in Bohr; energies in Hartree.

//Conversions. The Bohr radius is the CODATA 2022 value.
const (
	Bohr2A  = 0.529177210544
	A2Bohr  = 1 / 0.529177210544
	H2Kcal  = 627.509474 //Hartree to Kcal/mol
	Kcal2H  = 1 / 627.509474
	H2eV    = 27.211386245981
	KJ2Kcal = 1 / 4.184
	Kcal2KJ = 4.184
)

//XYZPrecision is the default number of decimals written for each
//coordinate in an XYZ file. 17 significant digits round-trip a float64.
const XYZPrecision = 17

//LengthUnit selects the unit for distances returned by geometric queries.
type LengthUnit int

const (
	Bohr LengthUnit = iota
	Angstrom
)

func (u LengthUnit) String() string {
	if u == Angstrom {
		return "angstrom"
	}
	return "bohr"
}
