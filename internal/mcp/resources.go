package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/overload/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) activeBlock(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	inst, err := h.db.GetActiveInstance(ctx, uid)
	if err != nil {
		// No active block is a valid state, not a failure.
		return jsonContents(req.Params.URI, map[string]any{"active_block": nil})
	}

	meso, err := h.db.GetMesocycle(ctx, inst.TemplateID)
	if err != nil {
		h.log.Warn("active_block: template lookup failed", "error", err)
	}

	sessions, err := h.db.ListSessions(ctx, uid, storage.SessionFilter{InstanceID: inst.ID})
	if err != nil {
		return nil, err
	}

	return jsonContents(req.Params.URI, map[string]any{
		"active_block": inst,
		"template":     meso,
		"sessions":     sessions,
	})
}

func (h *handlers) recentSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	sessions, err := h.db.ListSessions(ctx, uid, storage.SessionFilter{Limit: 20})
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, sessions)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
