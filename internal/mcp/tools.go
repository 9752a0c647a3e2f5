// ABOUTME: MCP tool implementations for the coach.
// ABOUTME: Read-only tools for recommendations, analytics, sessions and routines.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/coach/internal/analytics"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/progression"
	"github.com/harperreed/coach/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recommend",
		Description: "Recommend the next working weight for an exercise, or for every exercise in a routine",
	}, s.handleRecommend)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "dashboard",
		Description: "Weekly consistency, volume trend and personal records",
	}, s.handleDashboard)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "exercise_progress",
		Description: "Top weight and volume per session for one exercise, oldest first",
	}, s.handleExerciseProgress)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List recent workout sessions, newest first",
	}, s.handleListSessions)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_session",
		Description: "Get a workout session with every set by ID or ID prefix",
	}, s.handleGetSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_routines",
		Description: "List the training routines and their exercises",
	}, s.handleListRoutines)
}

// Tool input/output types

type recommendInput struct {
	ExerciseID string `json:"exercise_id,omitempty" jsonschema:"Exercise ID such as b1 or a3"`
	RoutineID  string `json:"routine_id,omitempty" jsonschema:"Routine ID (A, B, Finisher, Warmup) to recommend every exercise in it"`
}

type recommendation struct {
	ExerciseID        string             `json:"exercise_id"`
	ExerciseName      string             `json:"exercise_name"`
	RecommendedWeight float64            `json:"recommended_weight"`
	Note              string             `json:"note"`
	Status            progression.Status `json:"status"`
}

type recommendOutput struct {
	Recommendations []recommendation `json:"recommendations"`
}

type emptyInput struct{}

type progressInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise ID"`
}

type progressOutput struct {
	ExerciseID   string                   `json:"exercise_id"`
	ExerciseName string                   `json:"exercise_name"`
	Points       []analytics.ExerciseStat `json:"points"`
}

type listSessionsInput struct {
	Limit     int    `json:"limit,omitempty" jsonschema:"Max results (default 10)"`
	RoutineID string `json:"routine_id,omitempty" jsonschema:"Filter by routine ID"`
}

type sessionSummary struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	RoutineID   models.RoutineID `json:"routine_id"`
	TimeOfDay   models.TimeOfDay `json:"time_of_day"`
	Volume      float64          `json:"volume"`
	Exercises   int              `json:"exercises"`
	HasFeedback bool             `json:"has_feedback"`
}

type listSessionsOutput struct {
	Sessions []sessionSummary `json:"sessions"`
	Message  string           `json:"message,omitempty"`
}

type getSessionInput struct {
	ID string `json:"id" jsonschema:"Session ID or unique prefix"`
}

type routinesOutput struct {
	Routines []models.Routine `json:"routines"`
}

func (s *Server) handleRecommend(ctx context.Context, req *mcp.CallToolRequest, input recommendInput) (*mcp.CallToolResult, recommendOutput, error) {
	var exercises []models.Exercise
	switch {
	case input.ExerciseID != "":
		ex, ok := s.catalog.Exercise(input.ExerciseID)
		if !ok {
			return nil, recommendOutput{}, fmt.Errorf("unknown exercise: %s", input.ExerciseID)
		}
		exercises = []models.Exercise{ex}
	case input.RoutineID != "":
		r, ok := s.catalog.Routine(models.RoutineID(input.RoutineID))
		if !ok {
			return nil, recommendOutput{}, fmt.Errorf("unknown routine: %s", input.RoutineID)
		}
		exercises = r.Exercises
	default:
		return nil, recommendOutput{}, fmt.Errorf("exercise_id or routine_id is required")
	}

	history, err := s.history()
	if err != nil {
		return nil, recommendOutput{}, err
	}

	out := recommendOutput{Recommendations: make([]recommendation, 0, len(exercises))}
	for _, ex := range exercises {
		rec := progression.Recommend(ex.ID, history)
		out.Recommendations = append(out.Recommendations, recommendation{
			ExerciseID:        ex.ID,
			ExerciseName:      ex.Name,
			RecommendedWeight: rec.RecommendedWeight,
			Note:              rec.Note,
			Status:            rec.Status,
		})
	}
	return nil, out, nil
}

func (s *Server) handleDashboard(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	history, err := s.history()
	if err != nil {
		return nil, nil, err
	}
	return nil, analytics.BuildDashboard(history, s.catalog.Exercises(), s.now()), nil
}

func (s *Server) handleExerciseProgress(ctx context.Context, req *mcp.CallToolRequest, input progressInput) (*mcp.CallToolResult, any, error) {
	ex, ok := s.catalog.Exercise(input.ExerciseID)
	if !ok {
		return nil, nil, fmt.Errorf("unknown exercise: %s", input.ExerciseID)
	}
	history, err := s.history()
	if err != nil {
		return nil, nil, err
	}
	points := analytics.ExerciseProgress(ex.ID, history)
	if points == nil {
		points = []analytics.ExerciseStat{}
	}
	return nil, progressOutput{ExerciseID: ex.ID, ExerciseName: ex.Name, Points: points}, nil
}

func (s *Server) handleListSessions(ctx context.Context, req *mcp.CallToolRequest, input listSessionsInput) (*mcp.CallToolResult, listSessionsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 10
	}

	history, err := s.history()
	if err != nil {
		return nil, listSessionsOutput{}, err
	}

	if input.RoutineID != "" {
		filtered := history[:0:0]
		for _, ws := range history {
			if string(ws.RoutineID) == input.RoutineID {
				filtered = append(filtered, ws)
			}
		}
		history = filtered
	}

	recent := session.Recent(history, input.Limit)
	out := listSessionsOutput{Sessions: make([]sessionSummary, 0, len(recent))}
	for _, ws := range recent {
		out.Sessions = append(out.Sessions, summarizeSession(ws))
	}
	if len(out.Sessions) == 0 {
		out.Message = "No sessions found."
	}
	return nil, out, nil
}

func (s *Server) handleGetSession(ctx context.Context, req *mcp.CallToolRequest, input getSessionInput) (*mcp.CallToolResult, any, error) {
	history, err := s.history()
	if err != nil {
		return nil, nil, err
	}
	ws, err := session.Find(history, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("session not found: %s: %w", input.ID, err)
	}
	return nil, ws, nil
}

func (s *Server) handleListRoutines(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, routinesOutput, error) {
	return nil, routinesOutput{Routines: s.catalog.Routines}, nil
}

func summarizeSession(ws models.WorkoutSession) sessionSummary {
	return sessionSummary{
		ID:          ws.ID,
		Date:        ws.Date.Format("2006-01-02 15:04"),
		RoutineID:   ws.RoutineID,
		TimeOfDay:   ws.TimeOfDay,
		Volume:      analytics.SessionVolume(ws),
		Exercises:   len(ws.Logs),
		HasFeedback: ws.Feedback != nil,
	}
}
