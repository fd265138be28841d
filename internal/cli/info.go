package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info KIND NAME VERSION",
		Short: "Show deprecation state and release notes for a version",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0], args[1], args[2])
		},
	}

	return cmd
}

func runInfo(cmd *cobra.Command, kindArg, name, version string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ref, err := parseReference(kindArg, name, "")
	if err != nil {
		return err
	}
	ref = ref.WithVersion(version)
	resolver, err := loadResolver(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	deprecated, msg, err := resolver.DeprecationStatus(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to query deprecation state: %w", err)
	}
	if deprecated {
		fmt.Printf("DEPRECATED: %s\n", msg)
	}

	summary, url, err := resolver.Changelog(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to query release notes: %w", err)
	}
	if summary != "" {
		fmt.Println(summary)
	}
	if url != "" {
		fmt.Printf("Release notes: %s\n", url)
	}
	if !deprecated && summary == "" && url == "" {
		fmt.Println("no release information available")
	}
	return nil
}
