// Command dedalus is the CLI for the Dedalus interpreter: parse, desugar,
// and typecheck programs, run them for a number of timesteps, or drive them
// interactively.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dedalus "github.com/ritamzico/dedalus"
	"github.com/ritamzico/dedalus/internal/config"
	"github.com/ritamzico/dedalus/internal/engine"
	"github.com/ritamzico/dedalus/internal/render"
	"github.com/ritamzico/dedalus/internal/repl"
)

var (
	verbose bool

	timesteps  int
	low        int
	high       int
	configPath string
)

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

var rootCmd = &cobra.Command{
	Use:           "dedalus",
	Short:         "An interpreter for Dedalus, a Datalog dialect with time and distribution",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a program and pretty-print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := dedalus.ParseFile(args[0])
		if err != nil {
			return err
		}
		fmt.Println(program)
		return nil
	},
}

var desugarCmd = &cobra.Command{
	Use:   "desugar <file>",
	Short: "Parse and desugar a program and pretty-print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := dedalus.ParseFile(args[0])
		if err != nil {
			return err
		}
		fmt.Println(dedalus.Desugar(program))
		return nil
	},
}

var typecheckCmd = &cobra.Command{
	Use:   "typecheck <file>",
	Short: "Parse, desugar, and typecheck a program; silent on success",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := dedalus.CompileFile(args[0])
		return err
	},
}

// runDefaults resolves the run parameters: config file values fill in
// anything the flags left at their defaults.
func runDefaults(cmd *cobra.Command, programPath string) error {
	path := configPath
	if path == "" {
		path = filepath.Join(filepath.Dir(programPath), config.DefaultFile)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("timesteps") && cfg.Timesteps != 0 {
		timesteps = cfg.Timesteps
	}
	if !cmd.Flags().Changed("low") && cfg.Low != 0 {
		low = cfg.Low
	}
	if !cmd.Flags().Changed("high") && cfg.High != 0 {
		high = cfg.High
	}
	return nil
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Execute a program for a number of timesteps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runDefaults(cmd, args[0]); err != nil {
			return err
		}
		if low < 1 || low > high {
			return fmt.Errorf("async delay bounds must satisfy 1 <= low <= high, got [%d, %d]", low, high)
		}
		if timesteps < 0 {
			return fmt.Errorf("timesteps must be non-negative, got %d", timesteps)
		}

		program, err := dedalus.CompileFile(args[0])
		if err != nil {
			return err
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		process := dedalus.Spawn(program,
			dedalus.WithRandInt(dedalus.UniformRandInt(low, high)),
			engine.WithLogger(logger),
		)
		process = dedalus.Run(process, timesteps)
		fmt.Println(render.Process(process))
		return nil
	},
}

var replCmd = &cobra.Command{
	Use:   "repl [file]",
	Short: "Interactively load, extend, and step a program",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		r := repl.REPL{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
		return r.Run(path)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd.Flags().IntVar(&timesteps, "timesteps", 10, "number of timesteps to execute")
	runCmd.Flags().IntVar(&low, "low", 1, "lower bound of the async delivery delay")
	runCmd.Flags().IntVar(&high, "high", 10, "upper bound of the async delivery delay")
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a dedalus.yaml with run defaults")

	rootCmd.AddCommand(parseCmd, desugarCmd, typecheckCmd, runCmd, replCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
