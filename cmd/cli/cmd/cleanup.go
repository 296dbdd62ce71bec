package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"phonegen/core/artifact"
	"phonegen/internal/config"
)

// cleanupCmd removes expired artifacts from the download directory.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete artifacts older than the configured expiry age",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		maxAge := time.Duration(cfg.Download.ExpireHours) * time.Hour

		deleted, err := artifact.Sweep(cfg.Download.Dir, maxAge)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d expired files from %s\n", deleted, cfg.Download.Dir)
		return nil
	},
}
