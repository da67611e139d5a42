package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streamingfast/logging"
	"github.com/unkn0wn-root/mhash"
	"go.uber.org/zap"
)

// Version value, injected via go build `ldflags` at build time
var version = "dev"

func init() {
	logging.InstantiateLoggers(logging.WithDefaultLevel(zap.InfoLevel))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mhash",
		Short:         "Seeded non-cryptographic 64-bit hashing",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return viper.BindPFlags(cmd.Flags())
		},
	}

	flags := root.PersistentFlags()
	flags.Uint64("seed", 0, "Hash family selector mixed in before every value")
	flags.String("engine", mhash.Mix.Name(), fmt.Sprintf("Digest engine, one of %s", strings.Join(mhash.EngineNames(), ", ")))

	viper.SetEnvPrefix("MHASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	root.AddCommand(
		newSumCmd(),
		newFileCmd(),
		newDupsCmd(),
		newAvalancheCmd(),
		newOwnersCmd(),
	)
	return root
}

// globalParams reads the persistent flags, honoring MHASH_* environment
// overrides through viper.
func globalParams() (uint64, mhash.Engine, error) {
	e, err := mhash.EngineByName(viper.GetString("engine"))
	if err != nil {
		return 0, nil, err
	}
	return viper.GetUint64("seed"), e, nil
}
