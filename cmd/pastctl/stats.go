package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/pastorprompt/internal/access"
	"github.com/vytor/pastorprompt/internal/quizclient"
)

func newStatsCmd(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show accuracy statistics",
	}

	var (
		userFolder int64
		userID     string
	)
	user := &cobra.Command{
		Use:   "user",
		Short: "Show a player's accuracy (this machine's player by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := userID
			if id == "" {
				var err error
				if id, err = access.SessionID(env.store, quizclient.NewSessionID); err != nil {
					return err
				}
			}
			stats, err := env.client.UserStats(cmd.Context(), id, userFolder)
			if err != nil {
				return err
			}
			if env.jsonOut {
				return env.printJSON(stats)
			}
			fmt.Fprintf(env.out, "%d/%d correct (%.2f%%)\n", stats.CorrectCount, stats.TotalAttempts, stats.Accuracy)
			return nil
		},
	}
	user.Flags().Int64VarP(&userFolder, "folder", "f", 0, "restrict to one folder")
	user.Flags().StringVar(&userID, "user", "", "player id")

	var storyFolder int64
	stories := &cobra.Command{
		Use:   "stories",
		Short: "Show accuracy per story",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := env.client.StoryStats(cmd.Context(), storyFolder)
			if err != nil {
				return err
			}
			if env.jsonOut {
				return env.printJSON(rows)
			}
			w := env.table()
			fmt.Fprintln(w, "ID\tEVENT\tCORRECT\tTOTAL\tACCURACY")
			for _, s := range rows {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.2f%%\n", s.StoryID, truncate(s.Event, 40), s.CorrectCount, s.TotalAttempts, s.Accuracy)
			}
			return w.Flush()
		},
	}
	stories.Flags().Int64VarP(&storyFolder, "folder", "f", 0, "restrict to one folder")

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Show totals across the whole store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := env.client.Summary(cmd.Context())
			if err != nil {
				return err
			}
			if env.jsonOut {
				return env.printJSON(s)
			}
			w := env.table()
			fmt.Fprintf(w, "Folders:\t%d\n", s.Folders)
			fmt.Fprintf(w, "Stories:\t%d\n", s.Stories)
			fmt.Fprintf(w, "Players:\t%d\n", s.Users)
			fmt.Fprintf(w, "Attempts:\t%d\n", s.TotalAttempts)
			fmt.Fprintf(w, "Accuracy:\t%.2f%%\n", s.Accuracy)
			return w.Flush()
		},
	}

	cmd.AddCommand(user, stories, summary)
	return cmd
}
