/*
Copyright © 2018 the Electrodep authors.
This file is part of Electrodep.

Electrodep is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Electrodep is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Electrodep.  If not, see <http://www.gnu.org/licenses/>.
*/

package electrodeputil

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/phasefield/electrodep"
	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Run advances the metal-ion transport equation numSteps timesteps and
// writes the solved fields to outputFile.
func Run(scenarioFile, outputFile string, numSteps int, tolerance float64,
	solverName string, fused bool) error {

	scenario, err := LoadScenario(scenarioFile)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"scenario": scenarioFile,
		"cells":    scenario.Nx * scenario.Ny,
		"steps":    numSteps,
	}).Info("starting simulation")

	var solver electrodep.Solver
	switch solverName {
	case "direct":
		solver = electrodep.DirectSolver{}
	case "gauss-seidel":
		solver = electrodep.GaussSeidelSolver{Tolerance: tolerance, MaxIterations: 1000}
	default:
		return fmt.Errorf("electrodep: unknown solver %q (choose 'direct' or 'gauss-seidel')", solverName)
	}
	strategy := electrodep.FusedEvaluation
	if !fused {
		strategy = electrodep.ArrayEvaluation
	}

	m := scenario.Mesh()
	distance, err := electrodep.NewDistanceVariable("distance", m, scenario.DistanceValues(m))
	if err != nil {
		return err
	}
	ion := electrodep.UniformCellVariable("ion", m,
		scenario.InitialConcentration, electrodep.WithOld())
	source, err := electrodep.NewMetalIonSourceVariable(ion, distance,
		electrodep.NewScalarVariable("depositionRate", scenario.DepositionRate),
		scenario.AtomicVolume)
	if err != nil {
		return err
	}
	diffCoeff := electrodep.UniformCellVariable("diffusivity", m, scenario.Diffusivity)
	eq := electrodep.NewEquation(ion, []electrodep.Term{
		electrodep.TransientTerm{},
		electrodep.DiffusionTerm{Coeff: electrodep.NewHarmonicCellToFaceVariable(diffCoeff, strategy)},
		electrodep.ImplicitSourceTerm{Coeff: &source.Variable},
	}, solver)
	eq.SolutionTolerance = tolerance

	w := logger.Writer()
	defer w.Close()
	model := &electrodep.Model{
		Equations: []*electrodep.Equation{eq},
		Dt:        scenario.Dt,
		NSteps:    numSteps,
		LogWriter: w,
	}
	if err := model.Run(); err != nil {
		return err
	}
	if !eq.IsConverged() {
		logger.Warn("the final solve step did not converge; consider a smaller timestep")
	}

	ionVals, err := ion.Value()
	if err != nil {
		return err
	}
	sourceVals, err := source.Value()
	if err != nil {
		return err
	}

	// Summary statistics of the solved concentration field.
	var st stats.Stats
	for _, v := range ionVals.Elements {
		st.Update(v)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(tw, "field\tmean\tstddev\tmin\tmax")
	fmt.Fprintf(tw, "ion\t%.4g\t%.4g\t%.4g\t%.4g\n",
		st.Mean(), st.SampleStandardDeviation(), st.Min(), st.Max())
	tw.Flush()

	if err := writeOutput(outputFile, m, ionVals.Elements, sourceVals.Elements); err != nil {
		return err
	}
	logger.WithField("output", outputFile).Info("simulation complete")
	return nil
}

type outputCell struct {
	X, Y          float64
	Concentration float64
	Source        float64
}

type outputData struct {
	Version string
	Cells   []outputCell
}

// writeOutput writes the solved fields to a JSON file, one record per
// cell.
func writeOutput(filename string, m *electrodep.Mesh, conc, source []float64) error {
	out := outputData{Version: electrodep.Version}
	out.Cells = make([]outputCell, m.NCells())
	for i, c := range m.CellCenters {
		out.Cells[i] = outputCell{
			X: c.X, Y: c.Y,
			Concentration: conc[i],
			Source:        source[i],
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("electrodep: creating output file: %v", err)
	}
	defer f.Close()
	e := json.NewEncoder(f)
	if err := e.Encode(out); err != nil {
		return fmt.Errorf("electrodep: writing output file: %v", err)
	}
	return nil
}
