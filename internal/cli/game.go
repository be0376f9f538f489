package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameSummaryCmd())
	cmd.AddCommand(newGameMovesCmd())
	cmd.AddCommand(newGameCastsCmd())
	cmd.AddCommand(newGameTangledCmd())
	cmd.AddCommand(newGamePreviewCmd())
	cmd.AddCommand(newGameSelectCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameCastCmd())
	cmd.AddCommand(newGameLetterCmd())
	cmd.AddCommand(newGameConfirmCmd())
	cmd.AddCommand(newGameResetCmd())
	cmd.AddCommand(newGameDiscardCmd())
	cmd.AddCommand(newGameSkipCmd())
	cmd.AddCommand(newGameAICmd())
	cmd.AddCommand(newGameAIDiscardsCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func newGameNewCmd() *cobra.Command {
	var boardSize string
	var players int
	var twoLetterWords, endOnEmptyBag bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"board_size":       boardSize,
				"player_count":     players,
				"two_letter_words": twoLetterWords,
				"end_on_empty_bag": endOnEmptyBag,
			}
			var result GameState

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardSize, "size", "medium", "Board size: small, medium, large")
	cmd.Flags().IntVar(&players, "players", 2, "Number of players")
	cmd.Flags().BoolVar(&twoLetterWords, "two-letter-words", false, "Allow two-letter words")
	cmd.Flags().BoolVar(&endOnEmptyBag, "end-on-empty-bag", false, "Also end the game when the bag and all hands are empty")

	return cmd
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <id>",
		Short: "Show the summary of a completed game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SummaryResult

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/summary", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves <id> <seat> <glyphling>",
		Short: "List legal slide destinations for a glyphling",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CellsResult

			path := fmt.Sprintf("/api/v1/games/%s/moves?seat=%s&glyphling=%s", args[0], args[1], args[2])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCastsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "casts <id>",
		Short: "List legal cast cells from the pending destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CellsResult

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/casts", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameTangledCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tangled <id>",
		Short: "List tangled glyphlings per player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TangledResult

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/tangled", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <id> <col> <row> <letter>",
		Short: "Preview the words a cast would form",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			letter := strings.ToUpper(args[3])
			if len(letter) != 1 {
				return fmt.Errorf("letter must be a single character A-Z")
			}

			var result WordPreviewResult
			path := fmt.Sprintf("/api/v1/games/%s/word-preview?col=%s&row=%s&letter=%s",
				args[0], args[1], args[2], letter)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <id> <glyphling>",
		Short: "Select one of your glyphlings (starts the turn)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			glyphling, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid glyphling index: %w", err)
			}

			req := map[string]int{"glyphling": glyphling}
			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/select-glyphling", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <col> <row>",
		Short: "Choose the slide destination for the selected glyphling",
		Args:  cobra.ExactArgs(3),
		RunE:  cellIntent("select-destination"),
	}
}

func newGameCastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cast <id> <col> <row>",
		Short: "Choose the cast target cell",
		Args:  cobra.ExactArgs(3),
		RunE:  cellIntent("select-cast"),
	}
}

// cellIntent builds a RunE for intents that post a single cell
func cellIntent(endpoint string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		col, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid col: %w", err)
		}
		row, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid row: %w", err)
		}

		req := map[string]int{"col": col, "row": row}
		var result GameState

		if err := client.Post(fmt.Sprintf("/api/v1/games/%s/%s", args[0], endpoint), req, &result); err != nil {
			return err
		}

		out := NewOutput(cfg.Output)
		out.Print(result)
		return nil
	}
}

func newGameLetterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "letter <id> <letter>",
		Short: "Choose the letter to cast",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			letter := strings.ToUpper(args[1])
			if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
				return fmt.Errorf("letter must be a single character A-Z")
			}

			req := map[string]string{"letter": letter}
			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/select-letter", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <id>",
		Short: "Confirm the pending move and cast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ConfirmResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/confirm", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Abandon the pending selections and start the turn over",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/reset", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameDiscardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discard <id> [letters]",
		Short: "Discard letters in cycle mode (empty keeps the whole hand)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			letters := ""
			if len(args) == 2 {
				letters = strings.ToUpper(args[1])
			}

			req := map[string]string{"letters": letters}
			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/discard", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip <id>",
		Short: "Skip the turn (only legal when all your glyphlings are tangled)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/skip", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAICmd() *cobra.Command {
	var personality, difficulty string

	cmd := &cobra.Command{
		Use:   "ai <id>",
		Short: "Let the engine play one full turn for the current player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"personality": personality,
				"difficulty":  difficulty,
			}
			var result AIMoveResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/ai/move", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&personality, "personality", "scholar", "AI personality: scholar, warden, wanderer")
	cmd.Flags().StringVar(&difficulty, "difficulty", "first_class", "AI difficulty: apprentice, first_class, archmage")

	return cmd
}

func newGameAIDiscardsCmd() *cobra.Command {
	var personality string

	cmd := &cobra.Command{
		Use:   "ai-discards <id>",
		Short: "Let the engine resolve cycle mode for the current player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"personality": personality}
			var result AIDiscardsResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/ai/discards", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&personality, "personality", "scholar", "AI personality: scholar, warden, wanderer")

	return cmd
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/games/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}
