package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/fennecworks/dealscope/internal/collect"
	"github.com/fennecworks/dealscope/pkg/pipeline"
	"github.com/fennecworks/dealscope/pkg/predict"
)

var (
	cleanOutput  string
	cleanLocal   bool
	cleanPredict bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean [batch-file...]",
	Short: "Clean and deduplicate batch files",
	Long: `Clean reads raw startup records from JSON or YAML batch files, runs
them through normalization, validation, entity resolution, and quality
scoring, and writes the cleaned records to stdout.`,
	Args: cobra.ArbitraryArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "json",
		"output format: json, yaml, or summary")
	cleanCmd.Flags().BoolVar(&cleanLocal, "local", false,
		"include the curated local source catalogue")
	cleanCmd.Flags().BoolVar(&cleanPredict, "predict", false,
		"add investability scores to the output")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !cleanLocal {
		return fmt.Errorf("no input: pass batch files or --local")
	}

	collectors := make([]collect.Collector, 0, len(args)+1)
	if cleanLocal {
		collectors = append(collectors, collect.NewLocalSources())
	}
	for _, path := range args {
		collectors = append(collectors, collect.NewFileSource(path))
	}

	ctx := cmd.Context()
	batch, err := collect.All(ctx, collectors...)
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.WithThreshold(cfg.Threshold))
	result := p.Clean(ctx, batch)

	if cleanPredict {
		engine := predict.New(referenceYear())
		for i := range result.Records {
			engine.Apply(&result.Records[i])
		}
	}

	return emit(cmd.OutOrStdout(), result, cleanOutput)
}

// emit writes a pipeline result in the requested format.
func emit(w io.Writer, result *pipeline.Result, format string) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(result.Records)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "summary":
		fmt.Fprintln(w, result.Summary())
		for _, rec := range result.Records {
			fmt.Fprintf(w, "  %-30s %-12s quality=%3d confidence=%s\n",
				rec.Name, rec.Sector, rec.DataQualityScore, rec.Confidence)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Records)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
