package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "toolscout",
	Short: "Scrape AI tool websites into bilingual directory records",
	Long: `toolscout fetches a tool's website, extracts its metadata, classifies it
into tags and categories, generates descriptive content and stores the result
as a directory product. Run it as a service with "serve" or one-off with "scrape".`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./configs", "Directory containing config.yaml")
	rootCmd.AddCommand(newServeCmd(), newScrapeCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
