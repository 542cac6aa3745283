// Package mcp exposes the pdfdesk operations as Model Context Protocol tools
// over stdio. Tool arguments are file paths; documents never travel through
// the protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	pdfdesk "github.com/alnah/go-pdfdesk"
)

// ServerName is the name announced during the MCP handshake.
const ServerName = "pdfdesk"

// Converter renders HTML or Markdown input to PDF.
type Converter interface {
	Convert(ctx context.Context, input pdfdesk.Input) (*pdfdesk.Result, error)
}

// Compile-time interface check.
var _ Converter = (*pdfdesk.Converter)(nil)

// Server represents the MCP server instance.
type Server struct {
	version   string
	converter Converter
	toolkit   *pdfdesk.Toolkit
	logger    *log.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a server with every tool registered.
// A nil logger discards logs.
func NewServer(version string, conv Converter, tk *pdfdesk.Toolkit, logger *log.Logger) (*Server, error) {
	if conv == nil {
		return nil, errors.New("converter cannot be nil")
	}
	if tk == nil {
		return nil, errors.New("toolkit cannot be nil")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	s := &Server{
		version:   version,
		converter: conv,
		toolkit:   tk,
		logger:    logger,
		mcpServer: server.NewMCPServer(
			ServerName,
			version,
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s, nil
}

// Run serves the protocol on in/out until ctx is done or in is closed.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger)

	s.logger.Printf("serving %s %s on stdio", ServerName, s.version)
	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serving stdio: %w", err)
	}
	return nil
}

// toolDef pairs a tool with its handler.
type toolDef struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	for _, def := range s.tools() {
		s.mcpServer.AddTool(def.tool, def.handler)
	}
}

// tools lists the tool definitions in registration order.
func (s *Server) tools() []toolDef {
	input := func(desc string) mcp.ToolOption {
		return mcp.WithString("input", mcp.Required(), mcp.Description(desc))
	}
	output := mcp.WithString("output",
		mcp.Description("Output PDF path (default: input name with a suffix, next to the input)"),
	)
	inputs := func(desc string) mcp.ToolOption {
		return mcp.WithArray("inputs", mcp.Required(), mcp.Description(desc),
			mcp.Items(map[string]any{"type": "string"}),
		)
	}

	return []toolDef{
		{
			tool: mcp.NewTool("html_to_pdf",
				mcp.WithDescription("Render an HTML or Markdown file in a headless browser and save it as a paginated PDF"),
				input("Path to the .html, .htm or .md file"),
				output,
				mcp.WithString("format", mcp.Description("Paper format: a4 (default) or letter"), mcp.Enum("a4", "letter")),
				mcp.WithString("orientation", mcp.Description("portrait (default) or landscape"), mcp.Enum("portrait", "landscape")),
				mcp.WithString("mode", mcp.Description("slice (default) cuts pages, fit-page shrinks onto one page"), mcp.Enum("slice", "fit-page")),
				mcp.WithString("css", mcp.Description("Extra CSS applied after the base style")),
				mcp.WithBoolean("markdown", mcp.Description("Treat the input as Markdown regardless of its extension")),
			),
			handler: s.handleHTMLToPDF,
		},
		{
			tool: mcp.NewTool("merge_pdfs",
				mcp.WithDescription("Concatenate PDF files in the given order"),
				inputs("PDF paths, in merge order"),
				mcp.WithString("output", mcp.Required(), mcp.Description("Output PDF path")),
			),
			handler: s.handleMerge,
		},
		{
			tool: mcp.NewTool("split_pdf",
				mcp.WithDescription("Write one PDF per page, named <name>_page_<n>.pdf"),
				input("Path to the PDF"),
				mcp.WithString("output_dir", mcp.Description("Directory for the pages (default: the input directory)")),
			),
			handler: s.handleSplit,
		},
		{
			tool: mcp.NewTool("extract_pages",
				mcp.WithDescription("Create a PDF from selected pages, in selection order"),
				input("Path to the PDF"),
				mcp.WithString("pages", mcp.Required(), mcp.Description(`1-based pages and ranges, e.g. "1,3-5,end"`)),
				output,
			),
			handler: s.handleExtract,
		},
		{
			tool: mcp.NewTool("rotate_pdf",
				mcp.WithDescription("Set the rotation of every page, clockwise"),
				input("Path to the PDF"),
				mcp.WithNumber("degrees", mcp.Required(), mcp.Description("Absolute angle, a multiple of 90; negative counts counter-clockwise")),
				output,
			),
			handler: s.handleRotate,
		},
		{
			tool: mcp.NewTool("organize_pdf",
				mcp.WithDescription("Reorder pages; pages left out are dropped"),
				input("Path to the PDF"),
				mcp.WithString("order", mcp.Required(), mcp.Description(`New page order, e.g. "3,1,2"`)),
				output,
			),
			handler: s.handleOrganize,
		},
		{
			tool: mcp.NewTool("watermark_pdf",
				mcp.WithDescription("Stamp centered text on every page"),
				input("Path to the PDF"),
				mcp.WithString("text", mcp.Required(), mcp.Description("Watermark text")),
				mcp.WithNumber("font_size", mcp.Description("Font size in points (default 48)")),
				mcp.WithNumber("opacity", mcp.Description("0 to 1 (default 0.3)")),
				mcp.WithNumber("rotation", mcp.Description("Degrees (default -45)")),
				mcp.WithString("color", mcp.Description("#RRGGBB (default #808080)")),
				output,
			),
			handler: s.handleWatermark,
		},
		{
			tool: mcp.NewTool("images_to_pdf",
				mcp.WithDescription("Create a PDF with one page per PNG or JPEG image"),
				inputs("Image paths, in page order"),
				mcp.WithString("output", mcp.Required(), mcp.Description("Output PDF path")),
			),
			handler: s.handleImages,
		},
		{
			tool: mcp.NewTool("compress_pdf",
				mcp.WithDescription("Rewrite a PDF losslessly, removing redundant objects"),
				input("Path to the PDF"),
				output,
			),
			handler: s.handleCompress,
		},
		{
			tool: mcp.NewTool("lock_pdf",
				mcp.WithDescription("Encrypt a PDF with a password (AES-256)"),
				input("Path to the PDF"),
				mcp.WithString("password", mcp.Required(), mcp.Description("Password required to open the document")),
				output,
			),
			handler: s.handleLock,
		},
		{
			tool: mcp.NewTool("unlock_pdf",
				mcp.WithDescription("Decrypt a password-protected PDF"),
				input("Path to the PDF"),
				mcp.WithString("password", mcp.Required(), mcp.Description("Document password")),
				output,
			),
			handler: s.handleUnlock,
		},
		{
			tool: mcp.NewTool("pdf_info",
				mcp.WithDescription("Report page count, page sizes and metadata of a PDF"),
				input("Path to the PDF"),
			),
			handler: s.handleInfo,
		},
	}
}
