package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLatestCmd creates the latest command.
func NewLatestCmd() *cobra.Command {
	var (
		label   string
		pattern string
	)

	cmd := &cobra.Command{
		Use:   "latest KIND [NAME]",
		Short: "Resolve the latest version of an artifact",
		Long: `Query the catalog for the newest released version of an artifact.
The result can be narrowed with a label and a version constraint pattern
such as v1.2.x.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 1 {
				name = args[1]
			}
			return runLatest(cmd, args[0], name, label, pattern)
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Only consider versions tagged for this label")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Version constraint pattern (e.g. v1.2.x)")

	return cmd
}

func runLatest(cmd *cobra.Command, kindArg, name, label, pattern string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ref, err := parseReference(kindArg, name, label)
	if err != nil {
		return err
	}
	resolver, err := loadResolver(cfg)
	if err != nil {
		return err
	}

	resolved, err := resolver.LatestVersion(cmd.Context(), ref, pattern)
	if err != nil {
		return fmt.Errorf("failed to resolve latest version: %w", err)
	}

	fmt.Println(resolved.Version)
	if path := resolver.LocalPath(resolved); path != "" {
		fmt.Printf("cached at %s\n", path)
	}
	return nil
}
