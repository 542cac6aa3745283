package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	pdfdesk "github.com/alnah/go-pdfdesk"
	"github.com/alnah/go-pdfdesk/internal/fileutil"
)

// documentExtensions maps convertible extensions to whether they are Markdown.
var documentExtensions = map[string]bool{
	".html":     false,
	".htm":      false,
	".md":       true,
	".markdown": true,
}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
	Markdown   bool
}

// discoverAll discovers files under every input, in argument order.
func discoverAll(inputs []string, outputDir string, forceMarkdown bool) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, in := range inputs {
		found, err := discoverFiles(in, outputDir, forceMarkdown)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// discoverFiles finds all HTML and Markdown files to convert.
// An explicit file is accepted with any extension when forceMarkdown is set.
func discoverFiles(inputPath, outputDir string, forceMarkdown bool) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		markdown, err := classifyFile(inputPath, forceMarkdown)
		if err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath, Markdown: markdown}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		markdown, ok := documentExtensions[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath, Markdown: markdown || forceMarkdown})
		return nil
	})

	return files, err
}

// classifyFile validates an explicit input file and reports whether it is Markdown.
func classifyFile(path string, forceMarkdown bool) (bool, error) {
	if forceMarkdown {
		return true, nil
	}
	markdown, ok := documentExtensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return false, fmt.Errorf("%w: got %q", ErrUnsupportedExtension, filepath.Ext(path))
	}
	return markdown, nil
}

// resolveOutputPath determines the PDF output path for an input file.
// Directory inputs keep their relative layout under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	name := fileutil.ReplaceExt(filepath.Base(inputPath), ".pdf")

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if isPDFPath(outputDir) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}

// isPDFPath reports whether path names a PDF file rather than a directory.
func isPDFPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > pdfdesk.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, pdfdesk.MaxPoolSize)
	}
	return nil
}

// htmlOutputPath returns the HTML path corresponding to a PDF path.
func htmlOutputPath(pdfPath string) string {
	return fileutil.ReplaceExt(pdfPath, ".rendered.html")
}
