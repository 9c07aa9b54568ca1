package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newFoldersCmd(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "List and manage folders",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List folders with their story counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folders, err := env.client.ListFolders(cmd.Context(), search)
			if err != nil {
				return err
			}
			if env.jsonOut {
				return env.printJSON(folders)
			}
			w := env.table()
			fmt.Fprintln(w, "ID\tNAME\tSTORIES\tLOCKED")
			for _, f := range folders {
				locked, err := env.gate.HasPassword(f.ID)
				if err != nil {
					return err
				}
				lockMark := ""
				if locked {
					lockMark = "yes"
				}
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", f.ID, f.Name, f.StoryCount, lockMark)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "filter by name (case-insensitive)")

	var password string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a folder, optionally locking it locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := env.client.CreateFolder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if password != "" {
				if err := env.gate.SetFolderPassword(folder.ID, password); err != nil {
					return err
				}
			}
			if env.jsonOut {
				return env.printJSON(folder)
			}
			fmt.Fprintf(env.out, "Created folder %d %q\n", folder.ID, folder.Name)
			return nil
		},
	}
	create.Flags().StringVarP(&password, "password", "p", "", "lock the folder on this machine")

	rename := &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return env.gate.Guard(cmd.Context(), id, env, func(ctx context.Context) error {
				folder, err := env.client.RenameFolder(ctx, id, args[1])
				if err != nil {
					return err
				}
				if env.jsonOut {
					return env.printJSON(folder)
				}
				fmt.Fprintf(env.out, "Renamed folder %d to %q\n", folder.ID, folder.Name)
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a folder with its stories and their attempts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return env.gate.Guard(cmd.Context(), id, env, func(ctx context.Context) error {
				if err := env.client.DeleteFolder(ctx, id); err != nil {
					return err
				}
				if err := env.gate.ClearFolderPassword(id); err != nil {
					return err
				}
				fmt.Fprintf(env.out, "Deleted folder %d\n", id)
				return nil
			})
		},
	}

	lock := &cobra.Command{
		Use:   "lock ID PASSWORD",
		Short: "Set or change the local password of a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := env.client.GetFolder(cmd.Context(), id); err != nil {
				return err
			}
			return env.gate.Guard(cmd.Context(), id, env, func(ctx context.Context) error {
				if err := env.gate.SetFolderPassword(id, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(env.out, "Locked folder %d\n", id)
				return nil
			})
		},
	}

	unlock := &cobra.Command{
		Use:   "unlock ID",
		Short: "Remove the local password of a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return env.gate.Guard(cmd.Context(), id, env, func(ctx context.Context) error {
				if err := env.gate.ClearFolderPassword(id); err != nil {
					return err
				}
				fmt.Fprintf(env.out, "Unlocked folder %d\n", id)
				return nil
			})
		},
	}

	cmd.AddCommand(list, create, rename, del, lock, unlock)
	return cmd
}
