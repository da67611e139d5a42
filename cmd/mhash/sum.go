package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/streamingfast/cli/sflags"
	"github.com/unkn0wn-root/mhash"
	"go.uber.org/zap"
)

func newSumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sum [value...]",
		Short: "Hash each argument (or each stdin line) as a string",
		RunE:  sumE,
	}
	cmd.Flags().Bool("hex", false, "Print digests in hexadecimal")
	return cmd
}

func sumE(cmd *cobra.Command, args []string) error {
	seed, e, err := globalParams()
	if err != nil {
		return err
	}
	hex := sflags.MustGetBool(cmd, "hex")

	if len(args) > 0 {
		return writeSums(cmd.OutOrStdout(), e, seed, args, hex)
	}

	zlog.Debug("reading values from stdin", zap.String("engine", e.Name()), zap.Uint64("seed", seed))
	scanner := bufio.NewScanner(cmd.InOrStdin())
	var values []string
	for scanner.Scan() {
		values = append(values, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return writeSums(cmd.OutOrStdout(), e, seed, values, hex)
}

func writeSums(w io.Writer, e mhash.Engine, seed uint64, values []string, hex bool) error {
	h := mhash.NewHasher[mhash.String](seed, e)
	for _, v := range values {
		d := h.Hash64(mhash.String(v))
		var err error
		if hex {
			_, err = fmt.Fprintf(w, "%016x  %s\n", d, v)
		} else {
			_, err = fmt.Fprintf(w, "%d  %s\n", d, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
