package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/streamingfast/cli/sflags"
	"github.com/unkn0wn-root/mhash"
	"github.com/unkn0wn-root/mhash/ring"
)

func newOwnersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owners <key>...",
		Short: "Show which nodes own each key under rendezvous placement",
		Args:  cobra.MinimumNArgs(1),
		RunE:  ownersE,
	}
	cmd.Flags().String("nodes", "", "Comma-separated node IDs")
	cmd.Flags().Int("replicas", 2, "Owners per key")
	return cmd
}

func ownersE(cmd *cobra.Command, args []string) error {
	seed, e, err := globalParams()
	if err != nil {
		return err
	}
	nodes := splitNodes(sflags.MustGetString(cmd, "nodes"))
	if len(nodes) == 0 {
		return fmt.Errorf("--nodes is required")
	}

	r, err := buildRing(ring.Config{Replicas: sflags.MustGetInt(cmd, "replicas"), Seed: seed, Engine: e}, nodes)
	if err != nil {
		return err
	}

	for _, key := range args {
		owners := r.Owners(mhash.String(key))
		ids := make([]string, len(owners))
		for i, n := range owners {
			ids[i] = string(n.ID)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", key, strings.Join(ids, ","))
	}
	return nil
}

func splitNodes(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func buildRing(cfg ring.Config, nodes []string) (*ring.Ring, error) {
	r, err := ring.New(cfg)
	if err != nil {
		return nil, err
	}
	for _, id := range nodes {
		if err := r.Add(ring.NodeID(id), id); err != nil {
			return nil, err
		}
	}
	return r, nil
}
