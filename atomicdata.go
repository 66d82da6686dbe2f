/*
 * atomicdata.go, part of qcio.
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
	"fmt"
	"sort"
	"strings"
)

//A map for assigning atomic numbers to element symbols.
//All elements up to Og are present; symbol validation depends on it.
var symbolNumber = map[string]int{
	"H": 1, "He": 2, "Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8,
	"F": 9, "Ne": 10, "Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15,
	"S": 16, "Cl": 17, "Ar": 18, "K": 19, "Ca": 20, "Sc": 21, "Ti": 22,
	"V": 23, "Cr": 24, "Mn": 25, "Fe": 26, "Co": 27, "Ni": 28, "Cu": 29,
	"Zn": 30, "Ga": 31, "Ge": 32, "As": 33, "Se": 34, "Br": 35, "Kr": 36,
	"Rb": 37, "Sr": 38, "Y": 39, "Zr": 40, "Nb": 41, "Mo": 42, "Tc": 43,
	"Ru": 44, "Rh": 45, "Pd": 46, "Ag": 47, "Cd": 48, "In": 49, "Sn": 50,
	"Sb": 51, "Te": 52, "I": 53, "Xe": 54, "Cs": 55, "Ba": 56, "La": 57,
	"Ce": 58, "Pr": 59, "Nd": 60, "Pm": 61, "Sm": 62, "Eu": 63, "Gd": 64,
	"Tb": 65, "Dy": 66, "Ho": 67, "Er": 68, "Tm": 69, "Yb": 70, "Lu": 71,
	"Hf": 72, "Ta": 73, "W": 74, "Re": 75, "Os": 76, "Ir": 77, "Pt": 78,
	"Au": 79, "Hg": 80, "Tl": 81, "Pb": 82, "Bi": 83, "Po": 84, "At": 85,
	"Rn": 86, "Fr": 87, "Ra": 88, "Ac": 89, "Th": 90, "Pa": 91, "U": 92,
	"Np": 93, "Pu": 94, "Am": 95, "Cm": 96, "Bk": 97, "Cf": 98, "Es": 99,
	"Fm": 100, "Md": 101, "No": 102, "Lr": 103, "Rf": 104, "Db": 105,
	"Sg": 106, "Bh": 107, "Hs": 108, "Mt": 109, "Ds": 110, "Rg": 111,
	"Cn": 112, "Nh": 113, "Fl": 114, "Mc": 115, "Lv": 116, "Ts": 117,
	"Og": 118,
}

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.011,
	"O":  15.999,
	"N":  14.007,
	"P":  30.974,
	"S":  32.06,
	"Se": 78.971,
	"K":  39.098,
	"Ca": 40.078,
	"Mg": 24.305,
	"Cl": 35.45,
	"Na": 22.990,
	"Cu": 63.546,
	"Zn": 65.38,
	"Co": 58.933,
	"Fe": 55.845,
	"Mn": 54.938,
	"Cr": 51.996,
	"Si": 28.085,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.904,
}

//normalizeSymbol returns the element symbol in canonical capitalization
//("he" -> "He", "CL" -> "Cl") or an error if it names no known element.
func normalizeSymbol(s string) (string, error) {
	if s == "" {
		return "", vErr("symbols", ErrUnknownElement)
	}
	t := strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	if _, ok := symbolNumber[t]; !ok {
		return "", vErr("symbols", fmt.Sprintf("%s: %q", ErrUnknownElement, s))
	}
	return t, nil
}

//AtomicNumber returns the atomic number for an element symbol, in any
//capitalization. It returns an error for symbols naming no known element.
func AtomicNumber(symbol string) (int, error) {
	t, err := normalizeSymbol(symbol)
	if err != nil {
		return 0, errDecorate(err, "AtomicNumber")
	}
	return symbolNumber[t], nil
}

//SymbolMass returns the standard atomic weight of the element, or 0 and
//false if the element is not in the (bio-elements only) mass table.
func SymbolMass(symbol string) (float64, bool) {
	t, err := normalizeSymbol(symbol)
	if err != nil {
		return 0, false
	}
	m, ok := symbolMass[t]
	return m, ok
}

//hillFormula builds a molecular formula in the Hill system: carbon first,
//hydrogen second, all other elements alphabetically. Without carbon, all
//elements, hydrogen included, go alphabetically.
func hillFormula(symbols []string) string {
	counts := map[string]int{}
	for _, s := range symbols {
		counts[s]++
	}
	var order []string
	if counts["C"] > 0 {
		order = append(order, "C")
		if counts["H"] > 0 {
			order = append(order, "H")
		}
	}
	var rest []string
	for s := range counts {
		if counts["C"] > 0 && (s == "C" || s == "H") {
			continue
		}
		rest = append(rest, s)
	}
	sort.Strings(rest)
	order = append(order, rest...)
	var b strings.Builder
	for _, s := range order {
		b.WriteString(s)
		if counts[s] > 1 {
			fmt.Fprintf(&b, "%d", counts[s])
		}
	}
	return b.String()
}
