// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the devcase catalog for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/devcase/internal/apperr"
	"github.com/starford/devcase/internal/search"
	"github.com/starford/devcase/internal/siteservice"
)

// URLSchemeURI is the resource describing the site's URL scheme.
const URLSchemeURI = "devcase://url-scheme"

// Server wraps the MCP server with devcase tools.
type Server struct {
	mcp *server.MCPServer
	svc *siteservice.Service
}

// New creates a new MCP server with all devcase tools registered.
func New(svc *siteservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"devcase",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_articles",
		mcp.WithDescription("Filter, sort and paginate case-study articles. Multi-valued filters take "+
			"comma-separated slugs; values within one filter are ORed, different filters are ANDed. "+
			"Read the devcase://url-scheme resource for the slug vocabulary."),
		mcp.WithString("keyword", mcp.Description("Substring of the article title")),
		mcp.WithString("category", mcp.Description("Category slugs, comma-separated")),
		mcp.WithString("system", mcp.Description("System slugs, comma-separated")),
		mcp.WithString("type", mcp.Description("Article type slugs, comma-separated")),
		mcp.WithString("prefecture", mcp.Description("Prefecture slugs, comma-separated")),
		mcp.WithString("company", mcp.Description("Substring of the company name")),
		mcp.WithString("sort", mcp.Description("publishedAt (default) or viewCount")),
		mcp.WithNumber("page", mcp.Description("Page number, from 1")),
	), s.searchArticles)

	s.mcp.AddTool(mcp.NewTool("get_article",
		mcp.WithDescription("Get one article with its company, system, category, prefecture and related articles."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Numeric article id")),
	), s.getArticle)

	s.mcp.AddTool(mcp.NewTool("resolve_slug",
		mcp.WithDescription("Resolve a URL slug to a category, system or prefecture (checked in that order)."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Lowercase roman slug")),
	), s.resolveSlug)

	s.mcp.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List categories with their systems and article counts."),
	), s.listCategories)

	s.mcp.AddTool(mcp.NewTool("list_prefectures",
		mcp.WithDescription("List prefectures grouped by area, with article and company counts."),
	), s.listPrefectures)

	s.mcp.AddTool(mcp.NewTool("list_companies",
		mcp.WithDescription("List development companies, optionally only those in one prefecture."),
		mcp.WithString("prefecture", mcp.Description("Prefecture slug")),
	), s.listCompanies)

	s.mcp.AddTool(mcp.NewTool("full_text_search",
		mcp.WithDescription("Full-text search through article descriptions, keywords, tech stacks and company names."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Max results (default 20)")),
	), s.fullTextSearch)

	s.mcp.AddTool(mcp.NewTool("get_url_scheme",
		mcp.WithDescription("Returns the site's URL scheme and listing query parameters."),
	), s.getURLScheme)

	s.mcp.AddResource(
		mcp.NewResource(URLSchemeURI, "URL Scheme",
			mcp.WithResourceDescription("Page paths and query parameters of the case-study site."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readURLSchemeResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

func errorResult(err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError("not found: " + err.Error())
	}
	return mcp.NewToolResultError(err.Error())
}

// optString returns an optional string argument, or "" when absent.
func optString(req mcp.CallToolRequest, key string) string {
	if v, err := req.RequireString(key); err == nil {
		return v
	}
	return ""
}

func optInt(req mcp.CallToolRequest, key string) int {
	if v, err := req.RequireFloat(key); err == nil {
		return int(v)
	}
	return 0
}

func (s *Server) searchArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := url.Values{}
	for _, key := range []string{search.ParamKeyword, search.ParamCompany, search.ParamSort} {
		if v := optString(req, key); v != "" {
			q.Set(key, v)
		}
	}
	for _, key := range []string{search.ParamCategory, search.ParamSystem, search.ParamType, search.ParamPrefecture} {
		for _, slug := range strings.Split(optString(req, key), ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				q.Add(key, slug)
			}
		}
	}
	if page := optInt(req, search.ParamPage); page > 0 {
		q.Set(search.ParamPage, strconv.Itoa(page))
	}
	return jsonResult(s.svc.SearchArticles(ctx, q)), nil
}

func (s *Server) getArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := s.svc.Article(ctx, id)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(d), nil
}

func (s *Server) resolveSlug(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	m, err := s.svc.Resolve(ctx, slug)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(m), nil
}

func (s *Server) listCategories(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.Categories(ctx)), nil
}

func (s *Server) listPrefectures(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.Areas(ctx)), nil
}

func (s *Server) listCompanies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.svc.Companies(ctx, optString(req, "prefecture"))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(items), nil
}

func (s *Server) fullTextSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hits, err := s.svc.FullText(ctx, query, optInt(req, "limit"))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(hits), nil
}

func (s *Server) getURLScheme(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(URLScheme), nil
}

func (s *Server) readURLSchemeResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      URLSchemeURI,
			MIMEType: "text/markdown",
			Text:     URLScheme,
		},
	}, nil
}
