package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/studio/api"
	"github.com/spf13/cobra"
)

func newHealthCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the studio service and its agent are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := a.newLogger(false)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			h, err := a.client(logger).Health(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(h); err != nil {
					return err
				}
			} else {
				printHealth(out, h)
			}
			if h.Status != "ok" {
				return fmt.Errorf("service status %q", h.Status)
			}
			if !h.AgentConnected {
				return fmt.Errorf("agent %s is not connected", h.Agent)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printHealth(w io.Writer, h api.Health) {
	fmt.Fprintf(w, "status:    %s\n", h.Status)
	if h.Message != "" {
		fmt.Fprintf(w, "message:   %s\n", h.Message)
	}
	fmt.Fprintf(w, "agent:     %s\n", h.Agent)
	fmt.Fprintf(w, "resource:  %s\n", h.AgentResource)
	fmt.Fprintf(w, "connected: %t\n", h.AgentConnected)
}
