package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check connectivity to the catalog",
		RunE:  runStatus,
	}

	return cmd
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	resolver, err := loadResolver(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("site:  %s\n", cfg.Site.URL)
	fmt.Printf("store: %s\n", cfg.GetStoreURL())
	fmt.Printf("cache: %s\n", cfg.Settings.CacheDir)

	if resolver.HasRemoteAccess(cmd.Context()) {
		fmt.Println("catalog: reachable")
	} else {
		fmt.Println("catalog: not reachable (cached data only)")
	}
	return nil
}
