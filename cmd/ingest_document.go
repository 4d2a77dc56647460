/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/database"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
	"github.com/tieubaoca/docqa-be/utils"
)

// ingestDocumentCmd represents the ingest-document command
var ingestDocumentCmd = &cobra.Command{
	Use:   "ingest-document",
	Short: "Index a text file into the vector store",
	Long: `Reads a plain-text file, splits it into overlapping chunks and writes
them to the Weaviate store with the usual ingestion metadata.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		source, _ := cmd.Flags().GetString("source")
		description, _ := cmd.Flags().GetString("description")
		chunkSize, _ := cmd.Flags().GetInt("chunk-size")
		chunkOverlap, _ := cmd.Flags().GetInt("chunk-overlap")

		if filePath == "" {
			log.Fatal("--file is required")
		}

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}
		if source == "" {
			source = utils.GetFileNameWithoutExt(filePath)
		}

		ingestService := service.NewIngestService(weaviateDb, cfg.UploadDir, cfg.Chunking)
		result, err := ingestService.IngestText(context.Background(), types.IngestTextRequest{
			Text:         string(data),
			Source:       source,
			Description:  description,
			ChunkSize:    chunkSize,
			ChunkOverlap: chunkOverlap,
		})
		if err != nil {
			log.Fatalf("Ingestion failed: %v", err)
		}
		log.Printf("Ingested %d of %d chunks for source %q", result.InsertedCount, result.ChunkCount, source)
	},
}

func init() {
	rootCmd.AddCommand(ingestDocumentCmd)

	ingestDocumentCmd.Flags().StringP("file", "f", "", "Path to the text file to ingest")
	ingestDocumentCmd.Flags().StringP("source", "s", "", "Source label (defaults to the file name)")
	ingestDocumentCmd.Flags().String("description", "", "Free-form description stored with each chunk")
	ingestDocumentCmd.Flags().Int("chunk-size", 0, "Chunk size in characters (default from config)")
	ingestDocumentCmd.Flags().Int("chunk-overlap", 0, "Chunk overlap in characters (default from config)")
}
