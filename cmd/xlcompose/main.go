// Package main provides the CLI entry point for xlcompose-go.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ymgata/xlcompose-go/pkg/xlcompose"
	"github.com/ymgata/xlcompose-go/pkg/xlcompose/models"
	"github.com/ymgata/xlcompose-go/pkg/xlcompose/output"
)

var (
	outputDir    string
	reportPath   string
	pretty       bool
	noComposites bool
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xlcompose [input.xlsx]",
		Short: "Extract positioned images and shape overlays from Excel files",
		Long: `xlcompose-go extracts embedded images and drawn shapes from Excel files,
resolves their cell-anchor positions to pixels, and renders flattened
composites for images that have other objects overlaid on them.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "images_with_positions", "Directory for extracted images and composites")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "Write a JSON position report to this path")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print the JSON report")
	rootCmd.Flags().BoolVar(&noComposites, "no-composites", false, "Skip overlay detection and composite rendering")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	composites := !noComposites
	opts := xlcompose.Options{
		Logger:     logger,
		Composites: &composites,
	}

	wb, err := xlcompose.Extract(inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeArtifacts(wb); err != nil {
		return err
	}

	if reportPath != "" {
		report := output.BuildReport(wb)
		jsonData, err := output.ToJSON(report, pretty)
		if err != nil {
			return fmt.Errorf("report serialization failed: %w", err)
		}
		if err := os.WriteFile(reportPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	fmt.Printf("\nAll images saved to: %s\n", outputDir)
	return nil
}

func writeArtifacts(wb *models.WorkbookResult) error {
	for _, sheet := range wb.Sheets {
		for i, file := range sheet.ImageFiles {
			if err := os.WriteFile(filepath.Join(outputDir, file.Name), file.Data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", file.Name, err)
			}
			printImageInfo(sheet, i)
		}

		for _, comp := range sheet.Composites {
			if err := os.WriteFile(filepath.Join(outputDir, comp.Name), comp.Data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", comp.Name, err)
			}
			fmt.Printf("Sheet: %s\n", sheet.Name)
			fmt.Printf("  Composite: %s\n", comp.Name)
			fmt.Println("--------------------------------------------------")
		}
	}
	return nil
}

func printImageInfo(sheet models.SheetResult, idx int) {
	obj := sheet.Images[idx]
	file := sheet.ImageFiles[idx]

	topLeft, bottomRight := obj.Range.TopLeft, obj.Range.BottomRight
	if topLeft == "" {
		topLeft = "Unknown"
	}
	if bottomRight == "" {
		bottomRight = "Unknown"
	}

	fmt.Printf("Sheet: %s\n", sheet.Name)
	fmt.Printf("  Image: %s\n", file.Name)
	fmt.Printf("  Top-Left Cell: %s\n", topLeft)
	fmt.Printf("  Bottom-Right Cell: %s\n", bottomRight)
	fmt.Printf("  Position (pixels): x=%.1f, y=%.1f\n", obj.Box.X, obj.Box.Y)
	fmt.Printf("  Size (pixels): w=%.1f, h=%.1f\n", obj.Box.W, obj.Box.H)
	fmt.Println("--------------------------------------------------")
}
