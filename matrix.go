/*
 * matrix.go, part of qcio.
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

//All numeric array fields in qcio models (geometry, gradient, hessian)
//are stored flat, in float64, and serialized as plain nested arrays of
//numbers. On input both flat and nested arrays are accepted; the shape
//invariants are enforced when the containing model is constructed.

package qcio

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Coords is a flat list of Cartesian triples: x0, y0, z0, x1, y1, z1...
//The serialized form is a nested [n][3] array.
type Coords []float64

//MarshalJSON writes the coordinates as a nested [n][3] array.
func (c Coords) MarshalJSON() ([]byte, error) {
	nested := make([][]float64, 0, len(c)/3)
	for i := 0; i+2 < len(c); i += 3 {
		nested = append(nested, []float64{c[i], c[i+1], c[i+2]})
	}
	return json.Marshal(nested)
}

//UnmarshalJSON accepts either a nested array of triples or a flat array
//of numbers. Nested rows of length other than 3 are rejected.
func (c *Coords) UnmarshalJSON(b []byte) error {
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		return &PError{Format: "json", Message: "coordinates must be an array"}
	}
	flat, _, err := flatten(raw, 3)
	if err != nil {
		return err
	}
	*c = flat
	return nil
}

//Dense returns the coordinates as a newly allocated n x 3 gonum matrix.
func (c Coords) Dense() *mat.Dense {
	if len(c) == 0 {
		return nil
	}
	d := make([]float64, len(c))
	copy(d, c)
	return mat.NewDense(len(c)/3, 3, d)
}

//Copy returns an independent copy of the coordinates.
func (c Coords) Copy() Coords {
	d := make(Coords, len(c))
	copy(d, c)
	return d
}

//Row returns the ith triple as a slice backed by the receiver.
func (c Coords) Row(i int) []float64 {
	return c[3*i : 3*i+3]
}

//Matrix is a dense 2D array of float64 used for gradients and hessians.
//The serialized form is a nested array of rows. A Matrix built from flat
//input has no shape until the containing model coerces one onto it.
type Matrix struct {
	rows, cols int //both 0 while the matrix is unshaped
	data       []float64
}

//NewMatrix builds a rows x cols matrix from flat row-major data.
func NewMatrix(data []float64, rows, cols int) (*Matrix, error) {
	if rows*cols != len(data) {
		return nil, vErr("matrix", fmt.Sprintf("%s: %dx%d vs %d values", ErrBadShape, rows, cols, len(data)))
	}
	d := make([]float64, len(data))
	copy(d, data)
	return &Matrix{rows: rows, cols: cols, data: d}, nil
}

//Dims returns the row and column count. Both are 0 for unshaped matrices.
func (m *Matrix) Dims() (int, int) {
	return m.rows, m.cols
}

//At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

//Raw returns the underlying flat row-major data. The slice is shared
//with the matrix; treat it as read-only.
func (m *Matrix) Raw() []float64 {
	return m.data
}

//Dense returns the matrix as a newly allocated gonum matrix.
func (m *Matrix) Dense() *mat.Dense {
	if m.rows == 0 {
		return nil
	}
	d := make([]float64, len(m.data))
	copy(d, m.data)
	return mat.NewDense(m.rows, m.cols, d)
}

//Copy returns an independent copy of the matrix.
func (m *Matrix) Copy() *Matrix {
	if m == nil {
		return nil
	}
	d := make([]float64, len(m.data))
	copy(d, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: d}
}

//MarshalJSON writes the matrix as a nested array of rows. An unshaped
//matrix marshals as a single flat array.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	if m.rows == 0 && len(m.data) > 0 {
		return json.Marshal(m.data)
	}
	nested := make([][]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		nested[i] = m.data[i*m.cols : (i+1)*m.cols]
	}
	return json.Marshal(nested)
}

//UnmarshalJSON accepts a nested array of equal-length rows, which fixes
//the shape, or a flat array of numbers, which leaves the matrix unshaped.
func (m *Matrix) UnmarshalJSON(b []byte) error {
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		return &PError{Format: "json", Message: "matrix must be an array"}
	}
	flat, cols, err := flatten(raw, 0)
	if err != nil {
		return err
	}
	m.data = flat
	if cols > 0 {
		m.cols = cols
		m.rows = len(flat) / cols
	} else {
		m.rows, m.cols = 0, 0
	}
	return nil
}

//reshapeCols fixes the shape to len/cols x cols. Already-shaped matrices
//must agree with the requested column count.
func (m *Matrix) reshapeCols(cols int) error {
	if m.cols == cols {
		return nil
	}
	if m.cols != 0 || len(m.data)%cols != 0 {
		return vErr("matrix", fmt.Sprintf("%s: %d values into %d columns", ErrBadShape, len(m.data), cols))
	}
	m.cols = cols
	m.rows = len(m.data) / cols
	return nil
}

//reshapeSquare fixes the shape to n x n where n*n is the value count.
func (m *Matrix) reshapeSquare() error {
	if m.rows != 0 && m.rows != m.cols {
		return vErr("matrix", ErrNotSquare)
	}
	n := int(math.Round(math.Sqrt(float64(len(m.data)))))
	if n*n != len(m.data) {
		return vErr("matrix", ErrNotSquare)
	}
	m.rows, m.cols = n, n
	return nil
}

//flatten turns a decoded JSON array, nested or flat, into a flat float64
//slice. cols reports the nested row width, or 0 for flat input. wantCols,
//when nonzero, constrains the width of nested rows.
func flatten(raw []any, wantCols int) ([]float64, int, error) {
	flat := make([]float64, 0, len(raw))
	cols := 0
	for _, item := range raw {
		switch v := item.(type) {
		case float64:
			if cols != 0 {
				return nil, 0, vErr("matrix", "mixed flat and nested rows")
			}
			flat = append(flat, v)
		case []any:
			if len(flat) > 0 && cols == 0 {
				return nil, 0, vErr("matrix", "mixed flat and nested rows")
			}
			if cols == 0 {
				cols = len(v)
			}
			if len(v) != cols || (wantCols != 0 && cols != wantCols) {
				return nil, 0, vErr("matrix", ErrBadShape)
			}
			for _, e := range v {
				f, ok := e.(float64)
				if !ok {
					return nil, 0, vErr("matrix", "non-numeric value in array")
				}
				flat = append(flat, f)
			}
		default:
			return nil, 0, vErr("matrix", "non-numeric value in array")
		}
	}
	if cols == 0 && wantCols != 0 && len(flat)%wantCols != 0 {
		return nil, 0, vErr("matrix", ErrBadShape)
	}
	return flat, cols, nil
}
