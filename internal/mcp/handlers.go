package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	pdfdesk "github.com/alnah/go-pdfdesk"
	"github.com/alnah/go-pdfdesk/internal/fileutil"
)

// filePermissions is the mode of written files.
const filePermissions = 0o644

func (s *Server) handleHTMLToPDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := request.GetArguments()

	content, err := os.ReadFile(path) // #nosec G304 -- path is the tool argument
	if err != nil {
		return s.fail("html_to_pdf", err), nil
	}

	in := pdfdesk.Input{
		Format:      pdfdesk.PaperFormat(stringArg(args, "format")),
		Orientation: pdfdesk.Orientation(stringArg(args, "orientation")),
		Mode:        pdfdesk.Mode(stringArg(args, "mode")),
		CSS:         stringArg(args, "css"),
		SourceDir:   filepath.Dir(path),
	}
	if boolArg(args, "markdown") || isMarkdownPath(path) {
		in.Markdown = string(content)
	} else {
		in.HTML = string(content)
	}

	result, err := s.converter.Convert(ctx, in)
	if err != nil {
		return s.fail("html_to_pdf", err), nil
	}

	out := outputArg(args, fileutil.ReplaceExt(path, ".pdf"))
	if err := fileutil.WriteFileAtomic(out, result.PDF, filePermissions); err != nil {
		return s.fail("html_to_pdf", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created %s (%d pages, %s)", out, result.Pages, result.Page)), nil
}

func (s *Server) handleMerge(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	paths, err := stringsArg(args, "inputs")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := request.RequireString("output")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	docs, err := readAll(paths)
	if err != nil {
		return s.fail("merge_pdfs", err), nil
	}
	merged, err := s.toolkit.Merge(docs)
	if err != nil {
		return s.fail("merge_pdfs", err), nil
	}
	return s.write("merge_pdfs", out, merged, fmt.Sprintf("Merged %d files into %s", len(paths), out))
}

func (s *Server) handleSplit(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dir := stringArg(request.GetArguments(), "output_dir")
	if dir == "" {
		dir = filepath.Dir(path)
	}

	doc, err := os.ReadFile(path) // #nosec G304 -- path is the tool argument
	if err != nil {
		return s.fail("split_pdf", err), nil
	}
	pages, err := s.toolkit.Split(doc)
	if err != nil {
		return s.fail("split_pdf", err), nil
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	written := make([]string, 0, len(pages))
	for i, page := range pages {
		name := filepath.Join(dir, pdfdesk.SplitName(base, i+1))
		if err := fileutil.WriteFileAtomic(name, page, filePermissions); err != nil {
			return s.fail("split_pdf", err), nil
		}
		written = append(written, name)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Split into %d files:\n%s", len(written), strings.Join(written, "\n"))), nil
}

func (s *Server) handleExtract(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.transform(request, "extract_pages", "extracted", func(doc []byte, args map[string]any) ([]byte, error) {
		return s.toolkit.ExtractPages(doc, stringArg(args, "pages"))
	}, "pages")
}

func (s *Server) handleRotate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.transform(request, "rotate_pdf", "rotated", func(doc []byte, args map[string]any) ([]byte, error) {
		return s.toolkit.Rotate(doc, intArg(args, "degrees"))
	}, "degrees")
}

func (s *Server) handleOrganize(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.transform(request, "organize_pdf", "organized", func(doc []byte, args map[string]any) ([]byte, error) {
		return s.toolkit.Organize(doc, stringArg(args, "order"))
	}, "order")
}

func (s *Server) handleWatermark(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.transform(request, "watermark_pdf", "watermarked", func(doc []byte, args map[string]any) ([]byte, error) {
		return s.toolkit.Watermark(doc, pdfdesk.WatermarkOptions{
			Text:     stringArg(args, "text"),
			FontSize: intArg(args, "font_size"),
			Opacity:  floatArg(args, "opacity"),
			Rotation: intArg(args, "rotation"),
			Color:    stringArg(args, "color"),
		})
	}, "text")
}

func (s *Server) handleImages(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	paths, err := stringsArg(args, "inputs")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := request.RequireString("output")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	images, err := readAll(paths)
	if err != nil {
		return s.fail("images_to_pdf", err), nil
	}
	doc, err := s.toolkit.ImagesToPDF(images)
	if err != nil {
		return s.fail("images_to_pdf", err), nil
	}
	return s.write("images_to_pdf", out, doc, fmt.Sprintf("Created %s (%d pages)", out, len(images)))
}

func (s *Server) handleCompress(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.transform(request, "compress_pdf", "compressed", func(doc []byte, _ map[string]any) ([]byte, error) {
		return s.toolkit.Compress(doc)
	})
}

func (s *Server) handleLock(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.transform(request, "lock_pdf", "locked", func(doc []byte, args map[string]any) ([]byte, error) {
		return s.toolkit.Lock(doc, stringArg(args, "password"))
	}, "password")
}

func (s *Server) handleUnlock(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.transform(request, "unlock_pdf", "unlocked", func(doc []byte, args map[string]any) ([]byte, error) {
		return s.toolkit.Unlock(doc, stringArg(args, "password"))
	}, "password")
}

func (s *Server) handleInfo(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := os.ReadFile(path) // #nosec G304 -- path is the tool argument
	if err != nil {
		return s.fail("pdf_info", err), nil
	}
	info, err := s.toolkit.Info(doc)
	if err != nil {
		return s.fail("pdf_info", err), nil
	}
	return mcp.NewToolResultText(formatInfo(path, info)), nil
}

// transform runs a single-document operation: it checks the required
// arguments, reads input, applies fn and writes the output.
func (s *Server) transform(request mcp.CallToolRequest, tool, suffix string, fn func([]byte, map[string]any) ([]byte, error), required ...string) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := request.GetArguments()
	for _, key := range required {
		if _, ok := args[key]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("required argument %q not found", key)), nil
		}
	}

	doc, err := os.ReadFile(path) // #nosec G304 -- path is the tool argument
	if err != nil {
		return s.fail(tool, err), nil
	}
	result, err := fn(doc, args)
	if err != nil {
		return s.fail(tool, err), nil
	}

	out := outputArg(args, fileutil.AddSuffix(path, suffix))
	return s.write(tool, out, result, fmt.Sprintf("Created %s (%d bytes)", out, len(result)))
}

// write saves data to path and reports msg.
func (s *Server) write(tool, path string, data []byte, msg string) (*mcp.CallToolResult, error) {
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return s.fail(tool, err), nil
	}
	return mcp.NewToolResultText(msg), nil
}

// fail logs err and turns it into a tool error result.
func (s *Server) fail(tool string, err error) *mcp.CallToolResult {
	s.logger.Printf("%s: %v", tool, err)
	return mcp.NewToolResultError(err.Error())
}

// formatInfo renders a document summary.
func formatInfo(path string, info *pdfdesk.PDFInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", path)
	fmt.Fprintf(&b, "Size: %d bytes\n", info.Bytes)
	fmt.Fprintf(&b, "Pages: %d\n", info.Pages)
	if info.Version != "" {
		fmt.Fprintf(&b, "PDF version: %s\n", info.Version)
	}
	if info.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", info.Title)
	}
	if info.Producer != "" {
		fmt.Fprintf(&b, "Producer: %s\n", info.Producer)
	}
	for i, size := range info.Sizes {
		fmt.Fprintf(&b, "Page %d: %gx%g pt\n", i+1, size.Width, size.Height)
	}
	return b.String()
}

// readAll reads every path in order.
func readAll(paths []string) ([][]byte, error) {
	docs := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p) // #nosec G304 -- paths are tool arguments
		if err != nil {
			return nil, err
		}
		docs = append(docs, data)
	}
	return docs, nil
}

// isMarkdownPath reports whether path has a Markdown extension.
func isMarkdownPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// outputArg returns the "output" argument or fallback when absent.
func outputArg(args map[string]any, fallback string) string {
	if out := stringArg(args, "output"); out != "" {
		return out
	}
	return fallback
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func boolArg(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}

// floatArg reads a JSON number. JSON numbers decode as float64.
func floatArg(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func intArg(args map[string]any, key string) int {
	return int(floatArg(args, key))
}

// stringsArg reads a required array of strings.
func stringsArg(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("required argument %q not found", key)
	}

	var out []string
	switch v := raw.(type) {
	case []string:
		out = v
	case []any:
		out = make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("argument %q: item %d is not a string", key, i)
			}
			out = append(out, s)
		}
	default:
		return nil, fmt.Errorf("argument %q is not an array", key)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("argument %q is empty", key)
	}
	return out, nil
}
