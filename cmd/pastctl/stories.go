package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/pastorprompt/internal/models"
)

// guardScope runs action behind the folder's lock. The all-stories scope has
// no lock of its own.
func (e *appEnv) guardScope(ctx context.Context, folderID int64, action func(context.Context) error) error {
	if folderID == 0 {
		return action(ctx)
	}
	return e.gate.Guard(ctx, folderID, e, action)
}

func newStoriesCmd(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stories",
		Short: "List and manage stories",
	}

	var folderID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List stories, optionally within one folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.guardScope(cmd.Context(), folderID, func(ctx context.Context) error {
				stories, err := env.client.ListStories(ctx, folderID)
				if err != nil {
					return err
				}
				if env.jsonOut {
					return env.printJSON(stories)
				}
				if len(stories) == 0 {
					fmt.Fprintln(env.out, "No stories yet.")
					return nil
				}
				w := env.table()
				fmt.Fprintln(w, "ID\tFOLDER\tEVENT")
				for _, s := range stories {
					fmt.Fprintf(w, "%d\t%d\t%s\n", s.ID, s.FolderID, truncate(s.Event, 60))
				}
				return w.Flush()
			})
		},
	}
	list.Flags().Int64VarP(&folderID, "folder", "f", 0, "folder id (General or omitted lists every story)")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show a story, including which version is true",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			story, err := env.client.GetStory(cmd.Context(), id)
			if err != nil {
				return err
			}
			return env.guardScope(cmd.Context(), story.FolderID, func(ctx context.Context) error {
				if env.jsonOut {
					return env.printJSON(story)
				}
				env.printStory(story)
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a story and its attempts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			story, err := env.client.GetStory(cmd.Context(), id)
			if err != nil {
				return err
			}
			return env.guardScope(cmd.Context(), story.FolderID, func(ctx context.Context) error {
				if err := env.client.DeleteStory(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(env.out, "Deleted story %d\n", id)
				return nil
			})
		},
	}

	cmd.AddCommand(list, show, newStoryCreateCmd(env), newStoryEditCmd(env), del)
	return cmd
}

func (e *appEnv) printStory(s *models.Story) {
	fmt.Fprintf(e.out, "#%d  %s  (folder %d)\n", s.ID, s.Event, s.FolderID)
	if s.Introduction != "" {
		fmt.Fprintf(e.out, "\n%s\n", s.Introduction)
	}
	fmt.Fprintf(e.out, "\nTrue: %s\nFake: %s\n\nExplanation: %s\n", s.TrueVersion, s.FakeVersion, s.Explanation)
	if s.Hint != nil {
		fmt.Fprintf(e.out, "Hint: %s\n", *s.Hint)
	}
}
