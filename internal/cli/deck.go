package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/flashpuzzle/internal/api/request"
	"github.com/mcoot/flashpuzzle/internal/api/response"
	"github.com/mcoot/flashpuzzle/internal/services/deck"
)

func newDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Deck commands",
	}

	cmd.AddCommand(newDeckCreateCmd())
	cmd.AddCommand(newDeckGetCmd())
	cmd.AddCommand(newDeckListCmd())
	cmd.AddCommand(newDeckDeleteCmd())

	return cmd
}

func newDeckCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create <file>",
		Short: "Upload a deck from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := deck.ReadFile(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				file.Name = name
			}

			req := request.CreateDeckRequest{Name: file.Name}
			for _, c := range file.Cards {
				req.Cards = append(req.Cards, request.CardRequest{ID: c.ID, Front: c.Front, Back: c.Back})
			}

			var result response.Deck
			if err := client.Post("/api/v1/decks", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Override the deck name from the file")

	return cmd
}

func newDeckGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <deck-id>",
		Short: "Show a deck and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Deck
			if err := client.Get(fmt.Sprintf("/api/v1/decks/%s", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newDeckListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.DeckList
			if err := client.Get("/api/v1/decks", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newDeckDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <deck-id>",
		Short: "Delete a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/decks/%s", args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Deck deleted")
			return nil
		},
	}
}
