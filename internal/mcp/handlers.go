// ABOUTME: MCP tool handler implementations for the document QA server
// ABOUTME: Contains handler implementations with proper error handling for all 5 tools
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/documind/documind/internal/models"
	"github.com/documind/documind/internal/rag"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	service *rag.Service
}

// IndexDocuments handles the index_documents tool
func (h *Handlers) IndexDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}

	pathsRaw, exists := args["paths"]
	if !exists {
		return mcp.NewToolResultError("paths argument is required and must be an array of strings"), nil
	}
	pathsArray, ok := pathsRaw.([]interface{})
	if !ok || len(pathsArray) == 0 {
		return mcp.NewToolResultError("paths argument is required and must be a non-empty array of strings"), nil
	}

	paths := make([]string, 0, len(pathsArray))
	for _, raw := range pathsArray {
		path, ok := raw.(string)
		if !ok {
			return mcp.NewToolResultError("paths must contain only strings"), nil
		}
		paths = append(paths, path)
	}

	results := h.service.Index(ctx, paths)

	indexed := 0
	for _, r := range results {
		if r.Status == models.IndexStatusSuccess {
			indexed++
		}
	}

	response := map[string]interface{}{
		"results": results,
		"indexed": indexed,
		"total":   len(results),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// QueryDocuments handles the query_documents tool
func (h *Handlers) QueryDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	// A floor of 0 is a real value (accept everything), so the absent
	// case uses the unset sentinel rather than 0.
	req := models.QueryRequest{
		Query:           query,
		TopK:            request.GetInt("top_k", 0),
		SimilarityFloor: request.GetFloat("similarity_floor", models.UnsetSimilarityFloor),
		Rerank:          request.GetBool("rerank", false),
		FileFilter:      request.GetString("file_filter", ""),
	}

	response, err := h.service.Query(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// DeleteDocument handles the delete_document tool
func (h *Handlers) DeleteDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fileName, err := request.RequireString("file_name")
	if err != nil {
		return mcp.NewToolResultError("file_name argument is required and must be a string"), nil
	}

	deleted, err := h.service.DeleteDocument(fileName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"file_name":       fileName,
		"entries_deleted": deleted,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ClearIndex handles the clear_index tool
func (h *Handlers) ClearIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deleted, err := h.service.ClearAll()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("clear failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"entries_deleted": deleted,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetStats handles the get_stats tool
func (h *Handlers) GetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.service.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stats: %v", err)), nil
	}

	response := map[string]interface{}{
		"total_entries":   stats.TotalEntries,
		"total_documents": stats.TotalDocuments,
		"db_path":         stats.DBPath,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
