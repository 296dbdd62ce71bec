package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"phonegen/core/artifact"
	"phonegen/core/generate"
	"phonegen/core/model"
	"phonegen/db"
	"phonegen/internal/config"
)

var (
	genPrefix    string
	genSuffix4   string
	genSuffix3   string
	genProvince  string
	genCity      string
	genOperators []int
	genOutDir    string
)

// generateCmd runs one generation request end to end from the command line.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a candidate number list for a filter",
	Long: `Look up matched segments for the filter, expand them into the full
candidate set, write it to a text file, and split the file when it exceeds
the configured size limit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		filter := model.FilterSpec{
			Prefix:       genPrefix,
			ExactSuffix4: genSuffix4,
			ExactSuffix3: genSuffix3,
			Province:     genProvince,
			City:         genCity,
			Operators:    genOperators,
			MaxCount:     cfg.Generator.MaxCount,
		}
		if err := filter.Validate(); err != nil {
			return err
		}

		store, err := db.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		segments, err := store.FindSegments(ctx, filter.Prefix, filter.Province, filter.City, filter.Operators)
		if err != nil {
			return err
		}
		if len(segments) == 0 {
			fmt.Println("No matching segments found.")
			return nil
		}

		session := generate.NewSession(generate.Options{
			MaxCount: cfg.Generator.MaxCount,
			Workers:  cfg.Generator.Workers,
		})
		identifiers, err := session.Generate(ctx, filter, segments)
		if err != nil {
			return err
		}

		dir := genOutDir
		if dir == "" {
			dir = cfg.Download.Dir
		}
		name := artifact.UniqueName(dir, artifact.FileName(filter, time.Now()))
		art, err := artifact.Write(identifiers, dir, name)
		if err != nil {
			return err
		}

		parts, err := artifact.Partition(art, cfg.PartitionSizeLimit())
		if err != nil {
			return err
		}

		fmt.Printf("Generated %d numbers (%s)\n", art.LineCount, artifact.FormatSize(art.SizeBytes))
		for _, p := range parts {
			fmt.Printf("  %s  %s\n", p.Name, artifact.FormatSize(p.SizeBytes))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&genPrefix, "prefix", "", "leading 3-digit segment (required)")
	generateCmd.Flags().StringVar(&genSuffix4, "suffix4", "", "exact trailing 4 digits")
	generateCmd.Flags().StringVar(&genSuffix3, "suffix3", "", "exact trailing 3 digits")
	generateCmd.Flags().StringVar(&genProvince, "province", "", "province (required)")
	generateCmd.Flags().StringVar(&genCity, "city", "", "city (required)")
	generateCmd.Flags().IntSliceVar(&genOperators, "operators", nil, "operator codes 1-5")
	generateCmd.Flags().StringVar(&genOutDir, "out", "", "output directory (default: configured download dir)")
	_ = generateCmd.MarkFlagRequired("prefix")
	_ = generateCmd.MarkFlagRequired("province")
	_ = generateCmd.MarkFlagRequired("city")
}
