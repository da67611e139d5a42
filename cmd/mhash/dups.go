package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/streamingfast/cli/sflags"
	"github.com/unkn0wn-root/mhash"
	"go.uber.org/zap"
)

func newDupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dups <int>...",
		Short: "Report the first integer that appears more than once",
		Args:  cobra.MinimumNArgs(1),
		RunE:  dupsE,
	}
	cmd.Flags().Int("probes", 3, "Bloom filter probes used for the pre-filter")
	return cmd
}

func dupsE(cmd *cobra.Command, args []string) error {
	seed, _, err := globalParams()
	if err != nil {
		return err
	}
	values := make([]int64, len(args))
	for i, a := range args {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
		values[i] = v
	}

	cfg := mhash.DefaultBloomConfig(len(values))
	cfg.Seed = seed
	cfg.Probes = sflags.MustGetInt(cmd, "probes")

	twin, err := findDuplicates(values, cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !twin.Found {
		fmt.Fprintln(out, "no twin integers")
		return nil
	}
	fmt.Fprintf(out, "twin integers found: %d at positions %d and %d\n", twin.Value, twin.First, twin.Second)
	return nil
}

type twinResult struct {
	Found  bool
	Value  int64
	First  int
	Second int
}

// findDuplicates returns the earliest position whose value repeats later,
// paired with the next occurrence. A Bloom filter keeps the exact
// confirmation set down to values that were possibly seen twice.
func findDuplicates(values []int64, cfg mhash.BloomConfig) (twinResult, error) {
	bf, err := mhash.NewBloom(cfg)
	if err != nil {
		return twinResult{}, err
	}

	candidates := make(map[int64]int)
	for _, v := range values {
		if bf.AddAndCheck(mhash.I64(v)) {
			candidates[v] = 0
		}
	}
	zlog.Debug("bloom pre-filter done", zap.Int("values", len(values)), zap.Int("candidates", len(candidates)))
	if len(candidates) == 0 {
		return twinResult{}, nil
	}

	for _, v := range values {
		if _, ok := candidates[v]; ok {
			candidates[v]++
		}
	}

	for i, v := range values {
		if candidates[v] < 2 {
			continue
		}
		for j := i + 1; j < len(values); j++ {
			if values[j] == v {
				return twinResult{Found: true, Value: v, First: i, Second: j}, nil
			}
		}
	}
	return twinResult{}, nil
}
