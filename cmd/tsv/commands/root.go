package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	inputPath  string
	outputPath string
)

func Execute() error {
	root := &cobra.Command{
		Use:          "tsv",
		Short:        "Normalize and denormalize tab-separated text",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "input file (default stdin)")
	root.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")

	root.AddCommand(normalizeCmd(), denormalizeCmd())
	return root.Execute()
}

// readInput returns the whole document from --input or stdin.
func readInput() (string, error) {
	var r io.Reader = os.Stdin
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// writeOutput writes the transformed document to --output or stdout.
func writeOutput(doc string) error {
	if outputPath == "" {
		_, err := io.WriteString(os.Stdout, doc)
		return err
	}
	return os.WriteFile(outputPath, []byte(doc), 0o644)
}
