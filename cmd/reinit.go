/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/database"
)

// reinitCmd represents the reinit command
var reinitCmd = &cobra.Command{
	Use:   "reinit",
	Short: "Drop and recreate the chunk class",
	Long:  `Deletes every indexed chunk by dropping the Weaviate class and recreating it empty.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		if err := weaviateDb.ReInit(); err != nil {
			log.Fatalf("Failed to reinitialize Weaviate database: %v", err)
		}
		log.Println("Chunk class recreated")
	},
}

func init() {
	rootCmd.AddCommand(reinitCmd)
}
