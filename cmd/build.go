/*
Copyright © 2025 Alex Programs

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Alex-Programs/nuenki-dictionary/internal/builder"
	"github.com/Alex-Programs/nuenki-dictionary/internal/infrastructure/config"
)

const (
	buildInputKey  = "builder.input_path"
	buildOutputKey = "builder.output_path"
	buildSampleKey = "builder.sample_output_path"
	buildLevelKey  = "builder.compression_level"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the dictionary dump from a wiktextract JSONL corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := newLogger(cfg)

		inputPath := viper.GetString(buildInputKey)
		outputPath := viper.GetString(buildOutputKey)
		level := viper.GetInt(buildLevelKey)

		if inputPath == "" {
			return fmt.Errorf("an input corpus is required; pass --input or set BUILDER_INPUT_PATH")
		}
		if outputPath == "" {
			return fmt.Errorf("an output path is required; pass --output or set BUILDER_OUTPUT_PATH")
		}

		pipeline := builder.NewPipeline(logger, builder.Config{
			InputPath:        inputPath,
			OutputPath:       outputPath,
			SampleOutputPath: viper.GetString(buildSampleKey),
			CompressionLevel: level,
		})
		if err := pipeline.Run(cmd.Context()); err != nil {
			return fmt.Errorf("build dump: %w", err)
		}

		cmd.Printf("dump written: %s\n", outputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("input", "i", "", "path to the wiktextract JSONL corpus")
	buildCmd.Flags().StringP("output", "o", "", "path the dump is written to")
	buildCmd.Flags().String("sample-output", "", "optional path for a 1-in-200 JSON sample of the built entries")
	buildCmd.Flags().Int("zstd-level", 0, "per-entry zstd compression level (default 4)")

	bindFlagToViper(buildInputKey, buildCmd.Flags().Lookup("input"))
	bindFlagToViper(buildOutputKey, buildCmd.Flags().Lookup("output"))
	bindFlagToViper(buildSampleKey, buildCmd.Flags().Lookup("sample-output"))
	bindFlagToViper(buildLevelKey, buildCmd.Flags().Lookup("zstd-level"))
}
