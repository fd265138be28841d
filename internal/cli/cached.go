package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// NewCachedCmd creates the cached command.
func NewCachedCmd() *cobra.Command {
	var (
		label   string
		pattern string
		list    bool
	)

	cmd := &cobra.Command{
		Use:   "cached KIND [NAME]",
		Short: "Resolve the latest locally cached version of an artifact",
		Long: `Inspect the local cache without touching the network. By default the
newest cached version satisfying the label and pattern is printed;
with --list every cached version is shown.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 1 {
				name = args[1]
			}
			return runCached(args[0], name, label, pattern, list)
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Only consider versions tagged for this label")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Version constraint pattern (e.g. v1.2.x)")
	cmd.Flags().BoolVar(&list, "list", false, "List all cached versions instead of the latest")

	return cmd
}

func runCached(kindArg, name, label, pattern string, list bool) error {
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

	if list {
		versions := resolver.ListLocalVersions(ref.Kind, ref.SystemName())
		if len(versions) == 0 {
			fmt.Println("no cached versions")
			return nil
		}
		codes := make([]string, 0, len(versions))
		for code := range versions {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Printf("%s\t%s\n", code, versions[code])
		}
		return nil
	}

	resolved := resolver.LatestCachedVersion(ref, pattern)
	if resolved == nil {
		return fmt.Errorf("no cached version of %s satisfies the query", ref.SystemName())
	}
	fmt.Println(resolved.Version)
	fmt.Printf("cached at %s\n", resolver.LocalPath(*resolved))
	return nil
}
