package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dcall/lastcall/internal/config"
	"github.com/dcall/lastcall/internal/fanout"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	Nodes    []string
	Prefixes []string
	Port     int
	Timeout  int
}

// NewQueryCommand creates the root lastcall-query command.
func NewQueryCommand() *cobra.Command {
	cfg := config.Load()
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "lastcall-query <number>",
		Short: "Find the latest call record for a number across all nodes",
		Long: `Find the latest call record for a number across all nodes.

The number is tried under every configured dialing prefix against every
node's lookup endpoint, all in parallel. One line is printed per candidate
URL with the raw response body, or the failure if the node did not answer
within the timeout.

Example:
  lastcall-query 5551234 --nodes 192.168.0.251,192.168.0.252`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Nodes, "nodes", cfg.FanoutNodes, "node addresses to query (also LASTCALL_NODES)")
	cmd.Flags().StringSliceVar(&opts.Prefixes, "prefixes", cfg.FanoutPrefixes, "dialing prefixes to try")
	cmd.Flags().IntVar(&opts.Port, "port", cfg.FanoutPort, "lookup service port on each node")
	cmd.Flags().IntVar(&opts.Timeout, "timeout", cfg.FanoutTimeout, "per-request timeout in seconds")

	return cmd
}

func runQuery(opts *QueryOptions, number string, cmd *cobra.Command) error {
	if len(opts.Nodes) == 0 {
		return fmt.Errorf("no nodes configured: set --nodes or LASTCALL_NODES")
	}
	if len(opts.Prefixes) == 0 {
		return fmt.Errorf("no prefixes configured")
	}

	client := fanout.NewClient(opts.Nodes, opts.Prefixes, opts.Port, time.Duration(opts.Timeout)*time.Second)
	results := client.Run(cmd.Context(), number)

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Response from %s: request failed: %v\n", res.URL, res.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Response from %s:%s\n", res.URL, res.Body)
	}

	return nil
}
