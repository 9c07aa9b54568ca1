package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/pastorprompt/internal/models"
)

// storyFlags binds the editable story fields to command flags.
type storyFlags struct {
	event, introduction, trueVersion, fakeVersion, explanation, hint string
}

func (f *storyFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.event, "event", "", "event title")
	cmd.Flags().StringVar(&f.introduction, "intro", "", "introduction shown before the versions")
	cmd.Flags().StringVar(&f.trueVersion, "true", "", "the true version")
	cmd.Flags().StringVar(&f.fakeVersion, "fake", "", "the fabricated version")
	cmd.Flags().StringVar(&f.explanation, "explanation", "", "why the true version holds up")
	cmd.Flags().StringVar(&f.hint, "hint", "", "optional hint (empty clears it)")
}

// apply copies every flag the user set onto fields and reports whether any was.
func (f *storyFlags) apply(cmd *cobra.Command, fields *models.StoryFields) bool {
	changed := false
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
			changed = true
		}
	}
	set("event", &fields.Event, f.event)
	set("intro", &fields.Introduction, f.introduction)
	set("true", &fields.TrueVersion, f.trueVersion)
	set("fake", &fields.FakeVersion, f.fakeVersion)
	set("explanation", &fields.Explanation, f.explanation)
	if cmd.Flags().Changed("hint") {
		changed = true
		if strings.TrimSpace(f.hint) == "" {
			fields.Hint = nil
		} else {
			hint := f.hint
			fields.Hint = &hint
		}
	}
	return changed
}

// promptMissing asks for each required field that is still blank.
func (e *appEnv) promptMissing(fields *models.StoryFields) error {
	required := []struct {
		label string
		dst   *string
	}{
		{"Event: ", &fields.Event},
		{"True version: ", &fields.TrueVersion},
		{"Fake version: ", &fields.FakeVersion},
		{"Explanation: ", &fields.Explanation},
	}
	for _, r := range required {
		if strings.TrimSpace(*r.dst) != "" {
			continue
		}
		v, err := e.readLine(r.label)
		if err != nil {
			return err
		}
		*r.dst = v
	}
	return nil
}

func fieldsOf(s *models.Story) models.StoryFields {
	return models.StoryFields{
		Event:        s.Event,
		Introduction: s.Introduction,
		TrueVersion:  s.TrueVersion,
		FakeVersion:  s.FakeVersion,
		Explanation:  s.Explanation,
		Hint:         s.Hint,
	}
}

func newStoryCreateCmd(env *appEnv) *cobra.Command {
	var (
		flags    storyFlags
		folderID int64
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a story to a folder",
		Long: `create adds a story. Required fields not given as flags are read from
the terminal, one line each.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if folderID <= 0 {
				return fmt.Errorf("--folder must be a folder id")
			}
			return env.gate.Guard(cmd.Context(), folderID, env, func(ctx context.Context) error {
				var fields models.StoryFields
				flags.apply(cmd, &fields)
				if err := env.promptMissing(&fields); err != nil {
					return err
				}
				story, err := env.client.CreateStory(ctx, folderID, fields)
				if err != nil {
					return err
				}
				if env.jsonOut {
					return env.printJSON(story)
				}
				fmt.Fprintf(env.out, "Created story %d in folder %d\n", story.ID, story.FolderID)
				return nil
			})
		},
	}
	flags.bind(cmd)
	cmd.Flags().Int64VarP(&folderID, "folder", "f", models.GeneralFolderID, "folder to add the story to")
	return cmd
}

func newStoryEditCmd(env *appEnv) *cobra.Command {
	var (
		flags  storyFlags
		moveTo int64
	)
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a story's fields or move it to another folder",
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

			fields := fieldsOf(story)
			changed := flags.apply(cmd, &fields)
			moving := cmd.Flags().Changed("move-to") && moveTo != story.FolderID
			if !changed && !moving {
				return fmt.Errorf("nothing to change: pass at least one field flag or --move-to")
			}
			if moving && moveTo <= 0 {
				return fmt.Errorf("--move-to must be a folder id")
			}

			update := func(ctx context.Context) error {
				var target *int64
				if moving {
					target = &moveTo
				}
				updated, err := env.client.UpdateStory(ctx, id, target, fields)
				if err != nil {
					return err
				}
				if env.jsonOut {
					return env.printJSON(updated)
				}
				fmt.Fprintf(env.out, "Updated story %d (folder %d)\n", updated.ID, updated.FolderID)
				return nil
			}

			return env.gate.Guard(cmd.Context(), story.FolderID, env, func(ctx context.Context) error {
				if moving {
					return env.gate.Guard(ctx, moveTo, env, update)
				}
				return update(ctx)
			})
		},
	}
	flags.bind(cmd)
	cmd.Flags().Int64Var(&moveTo, "move-to", 0, "move the story to this folder")
	return cmd
}
