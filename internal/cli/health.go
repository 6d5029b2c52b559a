package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/flashpuzzle/internal/api/response"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Long:  "Query the server's health endpoint. Exits non-zero unless the server reports ok.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Health
			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			if result.Status != "ok" {
				return fmt.Errorf("server unhealthy: %s", result.Status)
			}
			return nil
		},
	}
}
