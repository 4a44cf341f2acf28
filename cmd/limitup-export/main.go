// cmd/limitup-export/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/zhaowt/limitup-export/pkg/config"
	"github.com/zhaowt/limitup-export/pkg/excel"
	"github.com/zhaowt/limitup-export/pkg/export"
	"github.com/zhaowt/limitup-export/pkg/model"
	"github.com/zhaowt/limitup-export/pkg/pipeline"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: limitup-export <inputFile> [outputDir]")
	}

	inputPath := args[0]
	outputDir := filepath.Dir(inputPath)
	if len(args) == 2 {
		outputDir = args[1]
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := config.BuildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer in.Close()

	rows, columns, err := excel.ReadSheet(in)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	processor, err := pipeline.NewProcessor(logger)
	if err != nil {
		return err
	}

	result, err := processor.Process(rows, columns, cfg.MaxConstraint)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	exporter, err := export.NewExporter(logger, cfg.SheetName)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	written, err := exporter.WriteResult(outputDir, base, result)
	if err != nil {
		return err
	}

	printReport(inputPath, result, written)
	return nil
}

func printReport(inputPath string, result *model.ProcessResult, written []string) {
	fmt.Printf("处理完成: %s\n", inputPath)
	fmt.Printf("记录数: %d, 页数: %d (约束上限 %d)\n",
		result.RecordCount, len(result.Pages), result.MaxConstraint)
	fmt.Printf("解析列: 最终涨停时间=%q 连续涨停天数=%q 涨停原因=%q 涨停原因类别=%q\n",
		result.ResolvedColumns.FinalLimitTime,
		result.ResolvedColumns.ConsecutiveDays,
		result.ResolvedColumns.LimitReason,
		result.ResolvedColumns.LimitReasonCategory)

	for _, page := range result.Pages {
		fmt.Printf("  第%d页: %d 条\n", page.PageNumber, page.RecordCount)
	}

	topN := len(result.CategoryStats)
	if topN > 10 {
		topN = 10
	}
	if topN > 0 {
		fmt.Println("高频涨停原因:")
		for _, stat := range result.CategoryStats[:topN] {
			fmt.Printf("  %s: %d\n", stat.Category, stat.Count)
		}
	}

	for _, diag := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "警告: 第%d行 %s 处理失败, 已置空 (%s)\n",
			diag.RowIndex+1, diag.ColumnName, diag.Reason)
	}

	fmt.Println("输出文件:")
	for _, path := range written {
		fmt.Println("  " + path)
	}
}
