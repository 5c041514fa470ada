package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"winlaunch/internal/container"
	"winlaunch/internal/preset"
)

func newContainerCommand(ctx *commandContext) *cobra.Command {
	containerCmd := &cobra.Command{
		Use:     "container",
		Aliases: []string{"containers"},
		Short:   "Inspect containers and their preset selection",
	}

	containerCmd.AddCommand(newContainerListCommand(ctx))
	containerCmd.AddCommand(newContainerCreateCommand(ctx))
	containerCmd.AddCommand(newContainerEnvCommand(ctx))
	containerCmd.AddCommand(newContainerPresetCommand(ctx))

	return containerCmd
}

type containerView struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Root          string `json:"root"`
	Emulator      string `json:"emulator,omitempty"`
	Box64Preset   string `json:"box64_preset,omitempty"`
	FEXCorePreset string `json:"fexcore_preset,omitempty"`
}

func newContainerListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.containerManager()
			if err != nil {
				return err
			}
			containers, err := manager.List()
			if err != nil {
				return err
			}
			box64 := preset.Box64(ctx.config.Presets.Box64Prefix)

			views := make([]containerView, 0, len(containers))
			for _, c := range containers {
				views = append(views, containerView{
					ID:            c.ID(),
					Name:          c.Name(),
					Root:          c.RootDir(),
					Emulator:      c.Config().Emulator,
					Box64Preset:   c.Preset(box64),
					FEXCorePreset: c.Preset(preset.FEXCore()),
				})
			}
			if jsonOut {
				return writeJSON(cmd, views)
			}
			if len(views) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No containers under %s\n", manager.Home())
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{strconv.Itoa(v.ID), v.Name, v.Emulator, v.Box64Preset, v.FEXCorePreset})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Emulator", "Box64 preset", "FEXCore preset"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}
	addJSONFlag(cmd, &jsonOut)
	return cmd
}

func newContainerCreateCommand(ctx *commandContext) *cobra.Command {
	var cfg container.Config
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty container directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.containerManager()
			if err != nil {
				return err
			}
			created, err := manager.Create(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created container %d at %s\n", created.ID(), created.RootDir())
			return nil
		},
	}
	cmd.Flags().IntVar(&cfg.ID, "id", 0, "Container id (default: next free id)")
	cmd.Flags().StringVar(&cfg.Name, "name", "", "Container name")
	cmd.Flags().StringVar(&cfg.Emulator, "emulator", "", "Emulator backend (FEXCore or Box64)")
	cmd.Flags().StringVar(&cfg.EnvVars, "env", "", "Space separated KEY=VALUE pairs")
	return cmd
}

// containerDomain picks the preset domain the container's emulator uses.
func (c *commandContext) containerDomain(ct *container.Container) preset.Domain {
	if ct.UsesFEXCore() {
		return preset.FEXCore()
	}
	return preset.Box64(c.config.Presets.Box64Prefix)
}

func lookupContainer(ctx *commandContext, arg string) (*container.Container, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return nil, fmt.Errorf("invalid container id %q", arg)
	}
	manager, err := ctx.containerManager()
	if err != nil {
		return nil, err
	}
	return manager.Get(id)
}

func newContainerEnvCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "env <id>",
		Short: "Print the launch environment: preset variables overlaid by container variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := lookupContainer(ctx, args[0])
			if err != nil {
				return err
			}
			domain := ctx.containerDomain(ct)
			store, err := ctx.presetStore(domain.Prefix())
			if err != nil {
				return err
			}
			presetID := ct.Preset(domain)
			if presetID == "" {
				presetID = store.Selected()
			}
			if _, ok := store.Get(presetID); !ok {
				return fmt.Errorf("container %d: %w: %s", ct.ID(), preset.ErrNotFound, presetID)
			}

			env := store.EnvVars(presetID)
			env.Merge(ct.EnvVars())
			if jsonOut {
				return writeJSON(cmd, map[string]any{
					"container_id": ct.ID(),
					"domain":       domain.Prefix(),
					"preset":       presetID,
					"env_vars":     env.Strings(),
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

func newContainerPresetCommand(ctx *commandContext) *cobra.Command {
	var domainName string
	var presetID string
	cmd := &cobra.Command{
		Use:   "preset <id>",
		Short: "Show or change the preset a container uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := lookupContainer(ctx, args[0])
			if err != nil {
				return err
			}
			domain := ctx.containerDomain(ct)
			if strings.TrimSpace(domainName) != "" {
				domain, err = preset.ParseDomain(domainName)
				if err != nil {
					return err
				}
			}

			if strings.TrimSpace(presetID) == "" {
				current := ct.Preset(domain)
				if current == "" {
					current = "(global selection)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", domain, current)
				return nil
			}

			store, err := ctx.presetStore(domain.Prefix())
			if err != nil {
				return err
			}
			if _, ok := store.Get(presetID); !ok {
				return fmt.Errorf("%w: %s", preset.ErrNotFound, presetID)
			}
			lockPath, err := ctx.namedLockPath("container", strconv.Itoa(ct.ID()))
			if err != nil {
				return err
			}
			return ctx.withLock(cmd, lockPath, func() error {
				ct.SetPreset(domain, presetID)
				if err := ct.Save(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Container %d now uses %s preset %s\n", ct.ID(), domain, presetID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&domainName, "domain", "d", "", "Preset domain (default: the container's emulator)")
	cmd.Flags().StringVar(&presetID, "set", "", "Preset id to assign")
	return cmd
}
