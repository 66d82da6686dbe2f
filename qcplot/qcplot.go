/*
 * qcplot.go, part of qcio.
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

//Package qcplot produces quick-look plots from calculation data:
//optimization energy profiles and conformer energy ladders. Output is
//png, the file name extension excluded.
package qcplot

import (
	"fmt"
	"math"

	"github.com/qcgo/qcio"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//EnergyProfile plots the energy of each optimization step, relative to
//the first finite one, in kcal/mol. Steps without an energy (failed
//steps) are skipped. The plot is saved as plotname.png.
func EnergyProfile(data *qcio.OptimizationData, title, plotname string) error {
	if data == nil {
		return fmt.Errorf("EnergyProfile: given nil data")
	}
	energies := data.Energies()
	ref := math.NaN()
	for _, e := range energies {
		if !math.IsNaN(e) {
			ref = e
			break
		}
	}
	if math.IsNaN(ref) {
		return fmt.Errorf("EnergyProfile: no finite energies in the trajectory")
	}
	pts := make(plotter.XYs, 0, len(energies))
	for i, e := range energies {
		if math.IsNaN(e) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: (e - ref) * qcio.H2Kcal})
	}
	p := basicPlot(title, "Step", "Energy (kcal/mol)")
	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(line, scatter)
	return p.Save(5*vg.Inch, 4*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

//ConformerLadder plots each conformer's energy above the lowest one, in
//kcal/mol, against its index in the energy-sorted list. The plot is
//saved as plotname.png.
func ConformerLadder(data *qcio.ConformerSearchData, title, plotname string) error {
	if data == nil {
		return fmt.Errorf("ConformerLadder: given nil data")
	}
	rel := data.ConformerEnergiesRelative()
	if len(rel) == 0 {
		return fmt.Errorf("ConformerLadder: no conformer energies")
	}
	pts := make(plotter.XYs, len(rel))
	for i, e := range rel {
		pts[i] = plotter.XY{X: float64(i), Y: e * qcio.H2Kcal}
	}
	p := basicPlot(title, "Conformer", "Relative energy (kcal/mol)")
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	p.Add(scatter)
	return p.Save(5*vg.Inch, 4*vg.Inch, fmt.Sprintf("%s.png", plotname))
}
