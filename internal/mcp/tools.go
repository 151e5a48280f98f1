package mcp

import (
	"context"

	"github.com/claude/overload/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetExerciseProgression = mcp.NewTool("get_exercise_progression",
	mcp.WithDescription("Retrieve the logged weight/rep history for one exercise across all sessions, oldest first. Skipped and unlogged sets are excluded."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise library ID")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of logged sets to return. Defaults to 200.")),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("List workout sessions with set counts, newest first."),
	mcp.WithNumber("instance_id", mcp.Description("Restrict to one mesocycle instance")),
	mcp.WithString("status", mcp.Description("Filter by session status"), mcp.Enum("in_progress", "completed", "skipped")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions. Defaults to 100.")),
)

var toolGetSessionSets = mcp.NewTool("get_session_sets",
	mcp.WithDescription("Retrieve one session's full set list in display order, including targets and logged performance."),
	mcp.WithNumber("session_id", mcp.Required(), mcp.Description("Workout session ID")),
)

var toolGetBlockVolume = mcp.NewTool("get_block_volume",
	mcp.WithDescription("Aggregate set volume per week and muscle group for a mesocycle instance. Shows prescribed set counts alongside how many were actually logged."),
	mcp.WithNumber("instance_id", mcp.Required(), mcp.Description("Mesocycle instance ID")),
)

var toolListMuscleGroups = mcp.NewTool("list_muscle_groups",
	mcp.WithDescription("List the distinct muscle groups present in the exercise library."),
)

// --- Tool handlers ---

func (h *handlers) getExerciseProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireInt("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	limit := req.GetInt("limit", 200)
	uid := UserIDFromContext(ctx)

	points, err := h.db.ExerciseProgression(ctx, uid, int64(exerciseID), limit)
	if err != nil {
		h.log.Error("mcp get_exercise_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(points)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	filter := storage.SessionFilter{
		InstanceID: int64(req.GetInt("instance_id", 0)),
		Status:     req.GetString("status", ""),
		Limit:      req.GetInt("limit", 100),
	}

	sessions, err := h.db.ListSessions(ctx, uid, filter)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireInt("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}
	uid := UserIDFromContext(ctx)

	// Ownership check before exposing the set list.
	if _, err := h.db.GetSession(ctx, int64(sessionID), uid); err != nil {
		return mcp.NewToolResultError("session not found"), nil
	}

	sets, err := h.db.GetSessionSets(ctx, int64(sessionID))
	if err != nil {
		h.log.Error("mcp get_session_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getBlockVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instanceID, err := req.RequireInt("instance_id")
	if err != nil {
		return mcp.NewToolResultError("instance_id parameter is required"), nil
	}
	uid := UserIDFromContext(ctx)

	inst, err := h.db.GetInstance(ctx, int64(instanceID))
	if err != nil || inst.UserID != uid {
		return mcp.NewToolResultError("instance not found"), nil
	}

	volume, err := h.db.BlockVolume(ctx, inst.ID)
	if err != nil {
		h.log.Error("mcp get_block_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(volume)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listMuscleGroups(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groups, err := h.db.ListMuscleGroups(ctx)
	if err != nil {
		h.log.Error("mcp list_muscle_groups", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(groups)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
