package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/mcoot/flashpuzzle/internal/model"
)

func newEventsCmd() *cobra.Command {
	var (
		jsonOutput    bool
		untilComplete bool
	)

	cmd := &cobra.Command{
		Use:   "events <session-id>",
		Short: "Stream SSE events from a puzzle session",
		Long: `Connect to the session's SSE endpoint and stream events in real-time.

Events include:
  - word_completed: A crossword word was filled in correctly
  - cells_rejected: A filled crossword word was wrong
  - word_found: A word-search selection matched a word
  - selection_rejected: A word-search selection matched nothing
  - puzzle_completed: Every word is solved
  - puzzle_restarted: The grid was regenerated

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, cmd.OutOrStdout(), args[0], jsonOutput, untilComplete)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().BoolVar(&untilComplete, "until-complete", false, "Exit after the puzzle_completed event")

	return cmd
}

// SSEEvent is one server-sent event as printed by --json
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(ctx context.Context, w io.Writer, sessionID string, jsonOutput, untilComplete bool) error {
	url := strings.TrimSuffix(cfg.ServerURL, "/") + "/api/v1/sessions/" + sessionID + "/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// No client timeout: the stream is open-ended
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if !jsonOutput {
		_, _ = fmt.Fprintf(w, "Connected to session %s\n", sessionID)
	}

	err = readSSE(resp.Body, func(name, data string) bool {
		printEvent(w, name, data, jsonOutput)
		return !(untilComplete && name == string(model.EventPuzzleCompleted))
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		_, _ = fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

// readSSE calls fn for each complete event in r until fn returns false or
// the stream ends. Comment lines such as keepalives are skipped.
func readSSE(r io.Reader, fn func(name, data string) bool) error {
	scanner := bufio.NewScanner(r)
	var name string
	var data []string

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		case line == "":
			if name != "" {
				if !fn(name, strings.Join(data, "\n")) {
					return nil
				}
			}
			name = ""
			data = nil
		}
	}
	return scanner.Err()
}

func printEvent(w io.Writer, name, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		b, _ := json.Marshal(SSEEvent{Time: now, Event: name, Data: data})
		_, _ = fmt.Fprintln(w, string(b))
		return
	}

	_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", now.Format("2006-01-02 15:04:05"), name, describeEvent(name, data))
}

// eventPayload covers the payload fields the text view summarises
type eventPayload struct {
	Word       string           `json:"word"`
	Answer     string           `json:"answer"`
	Number     int              `json:"number"`
	Direction  string           `json:"direction"`
	Cells      []model.Position `json:"cells"`
	Path       []model.Position `json:"path"`
	Kind       string           `json:"kind"`
	WordCount  int              `json:"word_count"`
	Generation int              `json:"generation"`
	Seed       uint64           `json:"seed"`
	Placed     int              `json:"placed"`
	Target     int              `json:"target"`
}

// describeEvent renders a one-line summary of an event's JSON body, falling
// back to the raw data for anything it does not recognise
func describeEvent(name, data string) string {
	var evt struct {
		Payload eventPayload `json:"payload"`
	}
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		return strings.ReplaceAll(truncate(data, 100), "\n", " ")
	}
	p := evt.Payload

	switch model.EventType(name) {
	case model.EventWordCompleted:
		return fmt.Sprintf("%d %s solved: %s", p.Number, p.Direction, p.Word)
	case model.EventCellsRejected:
		return fmt.Sprintf("%d cells rejected", len(p.Cells))
	case model.EventWordFound:
		return fmt.Sprintf("found %s", p.Answer)
	case model.EventSelectionRejected:
		return fmt.Sprintf("no word along %d cells", len(p.Path))
	case model.EventPuzzleCompleted:
		return fmt.Sprintf("%s complete, %d words", p.Kind, p.WordCount)
	case model.EventPuzzleRestarted:
		return fmt.Sprintf("generation %d (seed %d), placed %d/%d", p.Generation, p.Seed, p.Placed, p.Target)
	}

	return strings.ReplaceAll(truncate(data, 100), "\n", " ")
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
