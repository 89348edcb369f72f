package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/bezspring/internal/automation"
	"github.com/san-kum/bezspring/internal/storage"
	"github.com/spf13/cobra"
)

var (
	trials       int
	perturbation float64
	seed         int64
)

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s (%d steps)\n", sc.Name, len(sc.Steps))
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}
	fmt.Println()

	outcomes, err := automation.RunScenario(ctx, sc, st)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMETHOD\tK\tD\tSETTLE\tOVERSHOOT\tRUN\tSTATUS")
	for _, o := range outcomes {
		status := "ok"
		if o.Err != nil {
			status = o.Err.Error()
		}
		fmt.Fprintf(w, "%d\t%s\t%.4f\t%.3f\t%.0f\t%.4f\t%s\t%s\n",
			o.Step,
			o.Config.Method,
			o.Config.Stiffness,
			o.Config.Damping,
			o.Result.Metrics["settle_step"],
			o.Result.Metrics["overshoot"],
			o.RunID,
			status,
		)
	}
	if flushErr := w.Flush(); flushErr != nil {
		return flushErr
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base := traceConfig(cmd)

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, automation.MonteCarloConfig{
		Base:         base,
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         seed,
	})
	if err != nil {
		return err
	}

	stable, unstable, meanSettle := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("stable: %d\n", stable)
	fmt.Printf("unstable: %d\n", unstable)
	if meanSettle >= 0 {
		fmt.Printf("mean settle step: %.1f\n", meanSettle)
	} else {
		fmt.Println("mean settle step: n/a")
	}
	return nil
}
