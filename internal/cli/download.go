package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDownloadCmd creates the download command.
func NewDownloadCmd() *cobra.Command {
	var ensure bool

	cmd := &cobra.Command{
		Use:   "download KIND NAME VERSION",
		Short: "Download an artifact version into the local cache",
		Long: `Fetch the payload of an artifact version from the catalog and unpack it
into the local cache. With --ensure an already cached version is left
untouched.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, args[0], args[1], args[2], ensure)
		},
	}

	cmd.Flags().BoolVar(&ensure, "ensure", false, "Skip the download when the version is already cached")

	return cmd
}

func runDownload(cmd *cobra.Command, kindArg, name, version string, ensure bool) error {
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

	var path string
	if ensure {
		path, err = resolver.EnsureLocal(cmd.Context(), ref)
	} else {
		path, err = resolver.Download(cmd.Context(), ref)
	}
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", ref, err)
	}

	fmt.Println(path)
	return nil
}
