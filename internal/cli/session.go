package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/flashpuzzle/internal/api/request"
	"github.com/mcoot/flashpuzzle/internal/api/response"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Puzzle session commands",
	}

	cmd.AddCommand(newSessionStartCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionLetterCmd())
	cmd.AddCommand(newSessionClearCmd())
	cmd.AddCommand(newSessionSelectCmd())
	cmd.AddCommand(newSessionRestartCmd())
	cmd.AddCommand(newSessionDeleteCmd())

	return cmd
}

// parseInts converts positional grid coordinates
func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: must be a number", a)
		}
		out[i] = n
	}
	return out, nil
}

func newSessionStartCmd() *cobra.Command {
	var (
		kind string
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "start <deck-id>",
		Short: "Start a crossword or word search from a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateSessionRequest{DeckID: args[0], Kind: kind}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			var result response.Session
			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "crossword", "Puzzle kind: crossword, wordsearch")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Generation seed (default: random)")

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show the current state of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session
			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSessionLetterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "letter <session-id> <row> <col> <letter>",
		Short: "Enter a letter into a crossword cell",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := parseInts(args[1:3])
			if err != nil {
				return err
			}

			req := request.LetterRequest{
				PositionRequest: request.PositionRequest{Row: coords[0], Col: coords[1]},
				Letter:          args[3],
			}
			return postUpdate(fmt.Sprintf("/api/v1/sessions/%s/letters", args[0]), req)
		},
	}
}

func newSessionClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <session-id> <row> <col>",
		Short: "Clear a crossword cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := parseInts(args[1:3])
			if err != nil {
				return err
			}

			req := request.LetterRequest{
				PositionRequest: request.PositionRequest{Row: coords[0], Col: coords[1]},
			}
			return postUpdate(fmt.Sprintf("/api/v1/sessions/%s/letters", args[0]), req)
		},
	}
}

func newSessionSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <session-id> <start-row> <start-col> <end-row> <end-col>",
		Short: "Select a line of letters in a word search",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := parseInts(args[1:5])
			if err != nil {
				return err
			}

			req := request.SelectionRequest{
				Start: request.PositionRequest{Row: coords[0], Col: coords[1]},
				End:   request.PositionRequest{Row: coords[2], Col: coords[3]},
			}
			return postUpdate(fmt.Sprintf("/api/v1/sessions/%s/selections", args[0]), req)
		},
	}
}

func newSessionRestartCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "restart <session-id>",
		Short: "Regenerate the puzzle from the same deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req request.RestartRequest
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}
			return postUpdate(fmt.Sprintf("/api/v1/sessions/%s/restart", args[0]), req)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Generation seed (default: random)")

	return cmd
}

func newSessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/sessions/%s", args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Session deleted")
			return nil
		},
	}
}

// postUpdate sends a session mutation and prints the result
func postUpdate(path string, body any) error {
	var result response.SessionUpdate
	if err := client.Post(path, body, &result); err != nil {
		return err
	}

	NewOutput(cfg.Output).Print(result)
	return nil
}
