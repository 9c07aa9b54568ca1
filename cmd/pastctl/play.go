package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/pastorprompt/internal/access"
	"github.com/vytor/pastorprompt/internal/models"
	"github.com/vytor/pastorprompt/internal/quizclient"
)

func newPlayCmd(env *appEnv) *cobra.Command {
	var (
		folderID int64
		rounds   int
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Guess which version of a historical event is true",
		Long: `play draws a random story and shows its two versions in random order.
Answer 1 or 2, "h" for the hint, or "q" to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rounds < 1 {
				return fmt.Errorf("--rounds must be at least 1")
			}
			userID, err := access.SessionID(env.store, quizclient.NewSessionID)
			if err != nil {
				return err
			}
			return env.guardScope(cmd.Context(), folderID, func(ctx context.Context) error {
				for i := 0; i < rounds; i++ {
					done, err := env.playRound(ctx, userID, folderID)
					if err != nil || done {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().Int64VarP(&folderID, "folder", "f", 0, "folder to draw from (default every story)")
	cmd.Flags().IntVarP(&rounds, "rounds", "n", 1, "number of stories to play")
	return cmd
}

// playRound plays one story. done is true once the player quits or the folder
// has nothing to play.
func (e *appEnv) playRound(ctx context.Context, userID string, folderID int64) (done bool, err error) {
	story, err := e.client.RandomStory(ctx, folderID)
	if quizclient.IsNotFound(err) {
		fmt.Fprintln(e.out, "No stories to play in this folder.")
		return true, nil
	}
	if err != nil {
		return false, err
	}

	first, second := models.ChoiceTrue, models.ChoiceFake
	if e.swap() {
		first, second = second, first
	}
	versions := map[models.Choice]string{
		models.ChoiceTrue: story.TrueVersion,
		models.ChoiceFake: story.FakeVersion,
	}

	fmt.Fprintf(e.out, "\n%s\n", story.Event)
	if story.Introduction != "" {
		fmt.Fprintf(e.out, "%s\n", story.Introduction)
	}
	fmt.Fprintf(e.out, "\n1) %s\n2) %s\n", versions[first], versions[second])

	var choice models.Choice
	for choice == "" {
		answer, err := e.readLine("Which one is true? [1/2/h/q] ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "1":
			choice = first
		case "2":
			choice = second
		case "h":
			if story.Hint != nil {
				fmt.Fprintf(e.out, "Hint: %s\n", *story.Hint)
			} else {
				fmt.Fprintln(e.out, "No hint for this one.")
			}
		case "q":
			return true, nil
		default:
			fmt.Fprintln(e.out, "Please answer 1 or 2.")
		}
	}

	attempt, err := e.client.RecordAttempt(ctx, models.AttemptInput{
		UserID:  userID,
		StoryID: story.ID,
		Choice:  choice,
	})
	if err != nil {
		return false, err
	}
	if attempt.Correct {
		fmt.Fprintln(e.out, "Correct!")
	} else {
		fmt.Fprintln(e.out, "Not quite. That one was made up.")
	}
	fmt.Fprintf(e.out, "%s\n", story.Explanation)

	stats, err := e.client.UserStats(ctx, userID, folderID)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(e.out, "Score: %d/%d (%.0f%%)\n", stats.CorrectCount, stats.TotalAttempts, stats.Accuracy)
	return false, nil
}
