package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"winlaunch/internal/envvars"
	"winlaunch/internal/preset"
)

func newPresetCommand(ctx *commandContext) *cobra.Command {
	var domain string

	presetCmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage Box64 and FEXCore execution presets",
	}
	presetCmd.PersistentFlags().StringVarP(&domain, "domain", "d", "", "Preset domain: box64, wowbox64 or fexcore (default from config)")

	presetCmd.AddCommand(newPresetListCommand(ctx, &domain))
	presetCmd.AddCommand(newPresetShowCommand(ctx, &domain))
	presetCmd.AddCommand(newPresetCreateCommand(ctx, &domain))
	presetCmd.AddCommand(newPresetEditCommand(ctx, &domain))
	presetCmd.AddCommand(newPresetDuplicateCommand(ctx, &domain))
	presetCmd.AddCommand(newPresetRemoveCommand(ctx, &domain))
	presetCmd.AddCommand(newPresetExportCommand(ctx, &domain))
	presetCmd.AddCommand(newPresetImportCommand(ctx, &domain))
	presetCmd.AddCommand(newPresetSelectCommand(ctx, &domain))

	return presetCmd
}

type presetView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Custom   bool     `json:"custom"`
	Selected bool     `json:"selected"`
	EnvVars  []string `json:"env_vars,omitempty"`
}

func newPresetListCommand(ctx *commandContext, domain *string) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.presetStore(*domain)
			if err != nil {
				return err
			}
			selected := store.Selected()
			presets := store.List()

			if jsonOut {
				views := make([]presetView, 0, len(presets))
				for _, p := range presets {
					views = append(views, presetView{ID: p.ID, Name: p.Name, Custom: p.Custom(), Selected: p.ID == selected})
				}
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(presets))
			for _, p := range presets {
				kind := "built-in"
				if p.Custom() {
					kind = "custom"
				}
				marker := ""
				if p.ID == selected {
					marker = "*"
				}
				rows = append(rows, []string{marker, p.ID, p.Name, kind})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Domain: %s\n", store.Domain())
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"", "ID", "Name", "Type"}, rows, nil))
			return nil
		},
	}
	addJSONFlag(cmd, &jsonOut)
	return cmd
}

func newPresetShowCommand(ctx *commandContext, domain *string) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Print a preset's environment variables (defaults to the selected preset)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.presetStore(*domain)
			if err != nil {
				return err
			}
			id := store.Selected()
			if len(args) == 1 {
				id = args[0]
			}
			p, ok := store.Get(id)
			if !ok {
				return fmt.Errorf("%w: %s", preset.ErrNotFound, id)
			}
			env := store.EnvVars(id)
			if jsonOut {
				return writeJSON(cmd, presetView{
					ID:       p.ID,
					Name:     p.Name,
					Custom:   p.Custom(),
					Selected: p.ID == store.Selected(),
					EnvVars:  env.Strings(),
				})
			}
			for _, line := range env.Strings() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	addJSONFlag(cmd, &jsonOut)
	return cmd
}

func newPresetCreateCommand(ctx *commandContext, domain *string) *cobra.Command {
	var name string
	var envFlags []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a custom preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := parseEnvFlags(envFlags)
			if err != nil {
				return err
			}
			store, err := ctx.presetStore(*domain)
			if err != nil {
				return err
			}
			return ctx.withSettingsLock(cmd, func() error {
				id, err := store.CreateOrEdit("", name, env)
				if err != nil {
					return fmt.Errorf("create preset: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created preset %s\n", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Preset name")
	cmd.Flags().StringArrayVarP(&envFlags, "env", "e", nil, "Environment variable as KEY=VALUE (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newPresetEditCommand(ctx *commandContext, domain *string) *cobra.Command {
	var name string
	var envFlags []string
	var keepEnv bool
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a custom preset or replace its variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			store, err := ctx.presetStore(*domain)
			if err != nil {
				return err
			}
			return ctx.withSettingsLock(cmd, func() error {
				current, ok := store.Get(id)
				if !ok {
					return fmt.Errorf("%w: %s", preset.ErrNotFound, id)
				}
				if !current.Custom() {
					return fmt.Errorf("%w: %s", preset.ErrBuiltin, id)
				}
				if strings.TrimSpace(name) == "" {
					name = current.Name
				}
				env := store.EnvVars(id)
				if len(envFlags) > 0 {
					parsed, err := parseEnvFlags(envFlags)
					if err != nil {
						return err
					}
					if keepEnv {
						env.Merge(parsed)
					} else {
						env = parsed
					}
				}
				if _, err := store.CreateOrEdit(id, name, env); err != nil {
					return fmt.Errorf("edit preset: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated preset %s\n", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "New preset name")
	cmd.Flags().StringArrayVarP(&envFlags, "env", "e", nil, "Environment variable as KEY=VALUE (repeatable)")
	cmd.Flags().BoolVar(&keepEnv, "merge", false, "Merge --env values into the existing variables instead of replacing them")
	return cmd
}

func newPresetDuplicateCommand(ctx *commandContext, domain *string) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a preset into a new custom preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.presetStore(*domain)
			if err != nil {
				return err
			}
			return ctx.withSettingsLock(cmd, func() error {
				id, err := store.Duplicate(args[0])
				if err != nil {
					return fmt.Errorf("duplicate preset: %w", err)
				}
				p, _ := store.Get(id)
				fmt.Fprintf(cmd.OutOrStdout(), "Created preset %s (%s)\n", id, p.Name)
				return nil
			})
		},
	}
}

func newPresetRemoveCommand(ctx *commandContext, domain *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a custom preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := preset.CheckRemovable(id); err != nil {
				return err
			}
			store, err := ctx.presetStore(*domain)
			if err != nil {
				return err
			}
			return ctx.withSettingsLock(cmd, func() error {
				if _, ok := store.Get(id); !ok {
					return fmt.Errorf("%w: %s", preset.ErrNotFound, id)
				}
				if err := store.Remove(id); err != nil {
					return fmt.Errorf("remove preset: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed preset %s\n", id)
				return nil
			})
		},
	}
}

func newPresetExportCommand(ctx *commandContext, domain *string) *cobra.Command {
	var dir string
	return withDirFlag(&cobra.Command{
		Use:   "export <id>",
		Short: "Write a custom preset to a .wbp file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.presetStore(*domain)
			if err != nil {
				return err
			}
			target := strings.TrimSpace(dir)
			if target == "" {
				target = ctx.config.Paths.PresetsDir
			}
			path, ok := store.Export(args[0], target)
			if !ok {
				return errors.New("failed to export preset")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported preset to %s\n", path)
			return nil
		},
	}, &dir)
}

func withDirFlag(cmd *cobra.Command, dir *string) *cobra.Command {
	cmd.Flags().StringVar(dir, "dir", "", "Destination directory (default: paths.presets_dir)")
	return cmd
}

func newPresetImportCommand(ctx *commandContext, domain *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a preset from a .wbp file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open preset file: %w", err)
			}
			defer f.Close()

			store, err := ctx.presetStore(*domain)
			if err != nil {
				return err
			}
			return ctx.withSettingsLock(cmd, func() error {
				id, ok := store.Import(f)
				if !ok {
					return fmt.Errorf("failed to import preset from %s", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported preset %s\n", id)
				return nil
			})
		},
	}
}

func newPresetSelectCommand(ctx *commandContext, domain *string) *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Select the preset used by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.presetStore(*domain)
			if err != nil {
				return err
			}
			return ctx.withSettingsLock(cmd, func() error {
				if err := store.Select(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Selected %s preset %s\n", store.Domain(), args[0])
				return nil
			})
		},
	}
}

// parseEnvFlags turns repeated KEY=VALUE flags into an ordered mapping.
func parseEnvFlags(values []string) (*envvars.EnvVars, error) {
	env := envvars.New()
	for _, value := range values {
		key, val, ok := strings.Cut(value, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --env %q: want KEY=VALUE", value)
		}
		env.Put(strings.TrimSpace(key), val)
	}
	return env, nil
}
