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

// Package electrodeputil wires the electrodep model into a command-line
// interface with file-based configuration.
package electrodeputil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/phasefield/electrodep"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	Cfg = viper.New()

	// Options are the configuration options available to electrodep.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "ScenarioFile",
			usage: `
              ScenarioFile specifies the location of the TOML file describing
              the mesh and the physical parameters of the simulation.`,
			shorthand:  "s",
			defaultVal: "scenario.toml",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile specifies the path where the solved fields are
              written in JSON format.`,
			shorthand:  "o",
			defaultVal: "output.json",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "NumSteps",
			usage: `
              NumSteps specifies the number of timesteps to calculate.`,
			defaultVal: 100,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SolutionTolerance",
			usage: `
              SolutionTolerance specifies the relative residual below which
              a solve step counts as converged.`,
			defaultVal: electrodep.DefaultSolutionTolerance,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Solver",
			usage: `
              Solver selects the linear solver: 'direct' for dense LU or
              'gauss-seidel' for the iterative solver.`,
			defaultVal: "direct",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FusedInterpolation",
			usage: `
              FusedInterpolation selects the fused-loop evaluation of the
              harmonic face interpolation. If false, the vectorized array
              evaluation is used instead; the two produce identical results.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	for _, option := range options {
		for _, set := range option.flagsets {
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}

	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("electrodep: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "electrodep",
	Short: "A finite-volume electrochemical deposition model.",
	Long: `Electrodep solves metal-ion transport over an advancing deposition
interface on a finite-volume mesh. Use the subcommands specified below to
access the model functionality.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag) or by using command-line
arguments.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of electrodep.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("electrodep v%s\n", electrodep.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model.",
	Long: `run advances the metal-ion transport equation through the configured
number of timesteps and writes the solved fields to the output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(
			Cfg.GetString("ScenarioFile"),
			Cfg.GetString("OutputFile"),
			Cfg.GetInt("NumSteps"),
			cast.ToFloat64(Cfg.Get("SolutionTolerance")),
			Cfg.GetString("Solver"),
			Cfg.GetBool("FusedInterpolation"),
		)
	},
	DisableAutoGenTag: true,
}
