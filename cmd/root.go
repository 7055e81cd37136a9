package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site server",
	Long: `portfolio serves a personal site: hero globe, experience, filtered and
paginated projects, certifications and posts, and a contact form. It also
renders the globe offline and reports visitor statistics.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
}
