package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"winlaunch/internal/container"
	"winlaunch/internal/logging"
	"winlaunch/internal/shortcut"
)

func newShortcutCommand(ctx *commandContext) *cobra.Command {
	shortcutCmd := &cobra.Command{
		Use:     "shortcut",
		Aliases: []string{"shortcuts"},
		Short:   "Inspect and edit container desktop shortcuts",
	}

	shortcutCmd.AddCommand(newShortcutListCommand(ctx))
	shortcutCmd.AddCommand(newShortcutShowCommand(ctx))
	shortcutCmd.AddCommand(newShortcutUUIDCommand(ctx))
	shortcutCmd.AddCommand(newShortcutExtraCommand(ctx))
	shortcutCmd.AddCommand(newShortcutCoverCommand(ctx))
	shortcutCmd.AddCommand(newShortcutCloneCommand(ctx))

	return shortcutCmd
}

type shortcutView struct {
	Name        string            `json:"name"`
	File        string            `json:"file"`
	ContainerID int               `json:"container_id"`
	Path        string            `json:"path"`
	Executable  string            `json:"executable"`
	WMClass     string            `json:"wm_class,omitempty"`
	Icon        string            `json:"icon,omitempty"`
	CoverArt    string            `json:"cover_art,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

func newShortcutView(rec *shortcut.Record) shortcutView {
	view := shortcutView{
		Name:        rec.Name(),
		File:        rec.File(),
		ContainerID: rec.ContainerID(),
		Path:        rec.Path(),
		Executable:  rec.Executable(),
		WMClass:     rec.WMClass(),
		Icon:        rec.IconFile(),
		CoverArt:    rec.CoverArt(),
	}
	if keys := rec.ExtraKeys(); len(keys) > 0 {
		view.Extra = make(map[string]string, len(keys))
		for _, key := range keys {
			view.Extra[key], _ = rec.Extra(key)
		}
	}
	return view
}

// resolveShortcut accepts either a path to a shortcut file inside a
// container or a shortcut name searched across all containers.
func (c *commandContext) resolveShortcut(ref string) (*shortcut.Record, error) {
	manager, err := c.containerManager()
	if err != nil {
		return nil, err
	}
	layout := c.shortcutLayout()
	logger := logging.NewComponentLogger(c.ensureLogger(), "shortcut")

	if strings.ContainsRune(ref, os.PathSeparator) {
		abs, err := filepath.Abs(ref)
		if err != nil {
			return nil, fmt.Errorf("resolve shortcut path: %w", err)
		}
		containers, err := manager.List()
		if err != nil {
			return nil, err
		}
		for _, ct := range containers {
			rel, err := filepath.Rel(ct.RootDir(), abs)
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}
			return shortcut.Open(ct, abs, layout, shortcut.WithLogger(logger))
		}
		return nil, fmt.Errorf("%s is not inside any container under %s", abs, manager.Home())
	}
	return manager.FindShortcut(layout, ref)
}

// withShortcutLock serializes rewrites of one shortcut file.
func (c *commandContext) withShortcutLock(cmd *cobra.Command, rec *shortcut.Record, fn func() error) error {
	path, err := c.namedLockPath("shortcut", strconv.Itoa(rec.ContainerID()), rec.Name())
	if err != nil {
		return err
	}
	return c.withLock(cmd, path, fn)
}

func newShortcutListCommand(ctx *commandContext) *cobra.Command {
	var containerID int
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shortcuts across containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.containerManager()
			if err != nil {
				return err
			}
			layout := ctx.shortcutLayout()

			var records []*shortcut.Record
			if containerID > 0 {
				ct, err := manager.Get(containerID)
				if err != nil {
					return err
				}
				records, err = ct.Shortcuts(layout, ctx.ensureLogger())
				if err != nil {
					return err
				}
			} else {
				records, err = manager.AllShortcuts(layout)
				if err != nil {
					return err
				}
			}

			if jsonOut {
				views := make([]shortcutView, 0, len(records))
				for _, rec := range records {
					views = append(views, newShortcutView(rec))
				}
				return writeJSON(cmd, views)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shortcuts found")
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.Name(),
					strconv.Itoa(rec.ContainerID()),
					rec.Executable(),
					yesNo(rec.IconFile() != ""),
					yesNo(rec.CoverArt() != ""),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Name", "Container", "Executable", "Icon", "Cover"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().IntVar(&containerID, "container", 0, "Only list shortcuts of this container id")
	addJSONFlag(cmd, &jsonOut)
	return cmd
}

func newShortcutShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show <shortcut>",
		Short: "Show a shortcut's launch details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := ctx.resolveShortcut(args[0])
			if err != nil {
				return err
			}
			view := newShortcutView(rec)
			if jsonOut {
				return writeJSON(cmd, view)
			}
			fields := [][2]string{
				{"Name", view.Name},
				{"File", view.File},
				{"Container", strconv.Itoa(view.ContainerID)},
				{"Path", view.Path},
				{"Executable", view.Executable},
				{"WM class", view.WMClass},
				{"Icon", view.Icon},
				{"Cover art", view.CoverArt},
			}
			for _, key := range rec.ExtraKeys() {
				value, _ := rec.Extra(key)
				fields = append(fields, [2]string{"extra." + key, value})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderFields(fields))
			return nil
		},
	}
	addJSONFlag(cmd, &jsonOut)
	return cmd
}

func newShortcutUUIDCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "uuid <shortcut>",
		Short: "Print the shortcut's stable UUID, generating one if missing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := ctx.resolveShortcut(args[0])
			if err != nil {
				return err
			}
			return ctx.withShortcutLock(cmd, rec, func() error {
				id, err := rec.GenUUID()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
}

func newShortcutExtraCommand(ctx *commandContext) *cobra.Command {
	extraCmd := &cobra.Command{
		Use:   "extra",
		Short: "Read and write [Extra Data] keys",
	}

	extraCmd.AddCommand(&cobra.Command{
		Use:   "get <shortcut> <key>",
		Short: "Print an extra data value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := ctx.resolveShortcut(args[0])
			if err != nil {
				return err
			}
			value, ok := rec.Extra(args[1])
			if !ok {
				return fmt.Errorf("key %q not set on %s", args[1], rec.Name())
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})

	extraCmd.AddCommand(&cobra.Command{
		Use:   "set <shortcut> <key> <value>",
		Short: "Set an extra data value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(args[1])
			if key == "" || strings.ContainsAny(key, "=\n") {
				return fmt.Errorf("invalid key %q", args[1])
			}
			if strings.ContainsAny(args[2], "\r\n") {
				return errors.New("value must be a single line")
			}
			rec, err := ctx.resolveShortcut(args[0])
			if err != nil {
				return err
			}
			return ctx.withShortcutLock(cmd, rec, func() error {
				rec.PutExtra(key, args[2])
				return rec.SaveData()
			})
		},
	})

	extraCmd.AddCommand(&cobra.Command{
		Use:   "delete <shortcut> <key>",
		Short: "Remove an extra data key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := ctx.resolveShortcut(args[0])
			if err != nil {
				return err
			}
			return ctx.withShortcutLock(cmd, rec, func() error {
				rec.DeleteExtra(args[1])
				return rec.SaveData()
			})
		},
	})

	return extraCmd
}

func newShortcutCoverCommand(ctx *commandContext) *cobra.Command {
	coverCmd := &cobra.Command{
		Use:   "cover",
		Short: "Manage a shortcut's custom cover art",
	}

	coverCmd.AddCommand(&cobra.Command{
		Use:   "set <shortcut> <image>",
		Short: "Copy an image into the container and use it as cover art",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := ctx.resolveShortcut(args[0])
			if err != nil {
				return err
			}
			return ctx.withShortcutLock(cmd, rec, func() error {
				if err := rec.SaveCustomCoverArt(args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cover art saved to %s\n", rec.CustomCoverArtPath())
				return nil
			})
		},
	})

	coverCmd.AddCommand(&cobra.Command{
		Use:   "remove <shortcut>",
		Short: "Delete the custom cover art",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := ctx.resolveShortcut(args[0])
			if err != nil {
				return err
			}
			return ctx.withShortcutLock(cmd, rec, func() error {
				if err := rec.RemoveCustomCoverArt(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Custom cover art removed")
				return nil
			})
		},
	})

	return coverCmd
}

func newShortcutCloneCommand(ctx *commandContext) *cobra.Command {
	var targetID int
	cmd := &cobra.Command{
		Use:   "clone <shortcut>",
		Short: "Copy a shortcut and its icon into another container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := ctx.resolveShortcut(args[0])
			if err != nil {
				return err
			}
			manager, err := ctx.containerManager()
			if err != nil {
				return err
			}
			target, err := manager.Get(targetID)
			if err != nil {
				if errors.Is(err, container.ErrNotFound) {
					return fmt.Errorf("target %w", err)
				}
				return err
			}
			if !rec.CloneToContainer(target) {
				return fmt.Errorf("failed to clone %s into container %d", rec.Name(), target.ID())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cloned %s into container %d\n", rec.Name(), target.ID())
			return nil
		},
	}
	cmd.Flags().IntVar(&targetID, "to", 0, "Target container id")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
