package main

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand"

	"github.com/spf13/cobra"
	"github.com/streamingfast/cli/sflags"
	"github.com/unkn0wn-root/mhash"
	"go.uber.org/zap"
)

func newAvalancheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avalanche",
		Short: "Measure how many digest bits flip per flipped input bit",
		Args:  cobra.NoArgs,
		RunE:  avalancheE,
	}
	cmd.Flags().Int("trials", 1000, "Number of random inputs")
	cmd.Flags().Int("width", 16, "Input width in bytes")
	cmd.Flags().Uint64("rand-seed", 1, "Seed of the input generator")
	return cmd
}

func avalancheE(cmd *cobra.Command, _ []string) error {
	seed, e, err := globalParams()
	if err != nil {
		return err
	}
	trials := sflags.MustGetInt(cmd, "trials")
	width := sflags.MustGetInt(cmd, "width")
	if trials <= 0 || width <= 0 {
		return fmt.Errorf("trials and width must be positive")
	}

	rng := rand.New(rand.NewSource(int64(sflags.MustGetUint64(cmd, "rand-seed"))))
	st := measureAvalanche(e, seed, trials, width, rng)
	zlog.Info("avalanche measured", zap.String("engine", e.Name()), zap.Int("flips", st.Flips))

	fmt.Fprintf(cmd.OutOrStdout(), "engine=%s flips=%d mean=%.3f stddev=%.3f min=%d max=%d\n",
		e.Name(), st.Flips, st.Mean, st.StdDev, st.Min, st.Max)
	return nil
}

type avalancheStats struct {
	Flips  int
	Mean   float64
	StdDev float64
	Min    int
	Max    int
}

// measureAvalanche flips every bit of trials random inputs and records the
// Hamming distance between the original and the flipped digest.
func measureAvalanche(e mhash.Engine, seed uint64, trials, width int, rng *rand.Rand) avalancheStats {
	st := avalancheStats{Min: 64}
	var sum, sumSq float64

	buf := make([]byte, width)
	for t := 0; t < trials; t++ {
		rng.Read(buf)
		base := mhash.HashWith(e, seed, mhash.Raw(buf))
		for bit := 0; bit < width*8; bit++ {
			buf[bit/8] ^= 1 << (bit % 8)
			d := bits.OnesCount64(base ^ mhash.HashWith(e, seed, mhash.Raw(buf)))
			buf[bit/8] ^= 1 << (bit % 8)

			st.Flips++
			sum += float64(d)
			sumSq += float64(d * d)
			if d < st.Min {
				st.Min = d
			}
			if d > st.Max {
				st.Max = d
			}
		}
	}

	if tracer.Enabled() {
		zlog.Debug("avalanche raw sums", zap.Float64("sum", sum), zap.Float64("sum_sq", sumSq))
	}
	if st.Flips == 0 {
		st.Min = 0
		return st
	}
	n := float64(st.Flips)
	st.Mean = sum / n
	st.StdDev = math.Sqrt(math.Max(sumSq/n-st.Mean*st.Mean, 0))
	return st
}
