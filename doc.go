/*
 * doc.go, part of qcio.
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

/*Package qcio provides typed records for quantum-chemistry calculation
inputs, molecular structures and calculation results, plus serialization
of all of them to JSON, YAML, TOML and XYZ text.

	**qcio Capabilities**

    Models molecular structures (symbols, Cartesian geometry in Bohr,
	charge, multiplicity, connectivity, identifiers).

    Models calculation specs: calculation type, method/basis model,
	keywords, attached files.

    Models results as a tagged union: plain file bags, single-point
	numeric data (energy/gradient/hessian, frequencies, wavefunction),
	optimization trajectories and conformer searches, all wrapped in a
	Results envelope carrying the originating spec, logs and provenance.

    Reads and writes every model as JSON, YAML or TOML (one logical tree,
	three encodings), inferring the format from the file extension, with
	transparent gzip/zstd compression and base64 handling of binary file
	attachments.

    Reads/writes single and multi-structure XYZ files, carrying charge,
	multiplicity and identifiers on the comment line.

    Loads files written by older schema versions, remapping legacy field
	names and reporting each remap as a non-fatal compatibility warning.

qcio never runs a quantum-chemistry program itself. An execution engine
takes a spec and returns a Results value; a cheminformatics backend (for
SMILES conversion) can be plugged in through the ChemBackend interface.

The library does not modify values in place after construction. To alter
a model, derive a new one (Copy plus field edits on the copy, or the
dedicated transforming methods, which always return new values). Several
Results may share one Spec, so in-place edits would corrupt neighbors.
*/
package qcio
