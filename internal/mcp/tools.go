// ABOUTME: MCP tool definitions and registration for the document QA server
// ABOUTME: Defines JSON schemas for the index, query, delete, clear, and stats tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/documind/documind/internal/models"
	"github.com/documind/documind/internal/rag"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, service *rag.Service) *Handlers {
	handlers := &Handlers{service: service}

	// 1. index_documents - Index document files into the vector store
	server.AddTool(mcp.Tool{
		Name:        "index_documents",
		Description: "Index text documents into the vector store so they can be queried. Accepts paths to .txt and .md files. Re-indexing a file replaces its previous entries.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "File paths to index",
				},
			},
			Required: []string{"paths"},
		},
	}, handlers.IndexDocuments)

	// 2. query_documents - Ask a question over the indexed documents
	server.AddTool(mcp.Tool{
		Name:        "query_documents",
		Description: "Answer a question using the indexed documents. The answer cites its sources with [1], [2] markers.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from the indexed documents",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of source chunks to retrieve (default: 5, max: 20)",
					"default":     models.DefaultTopK,
				},
				"similarity_floor": map[string]interface{}{
					"type":        "number",
					"description": "Minimum similarity score for a chunk to be used (default: 0.3)",
					"default":     models.DefaultSimilarityFloor,
				},
				"rerank": map[string]interface{}{
					"type":        "boolean",
					"description": "Rerank retrieved chunks for diversity before answering",
				},
				"file_filter": map[string]interface{}{
					"type":        "string",
					"description": "Restrict retrieval to a single document by file name",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.QueryDocuments)

	// 3. delete_document - Remove a document from the index
	server.AddTool(mcp.Tool{
		Name:        "delete_document",
		Description: "Remove all indexed entries for a document by file name.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"file_name": map[string]interface{}{
					"type":        "string",
					"description": "File name of the document to remove",
				},
			},
			Required: []string{"file_name"},
		},
	}, handlers.DeleteDocument)

	// 4. clear_index - Remove every document from the index
	server.AddTool(mcp.Tool{
		Name:        "clear_index",
		Description: "Remove all indexed entries for all documents, leaving an empty index. The embedding cache is kept.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ClearIndex)

	// 5. get_stats - Report index size
	server.AddTool(mcp.Tool{
		Name:        "get_stats",
		Description: "Get statistics about the document index: entry count, document count, and database path.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetStats)

	return handlers
}
