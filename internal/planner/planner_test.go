package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	lastReq llm.GenerateRequest
	text    string
	err     error
}

func (f *fakeClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.text, Model: "test"}, nil
}

func (f *fakeClient) Available(context.Context) bool { return true }

func testInput() contract.PlanningInput {
	return contract.PlanningInput{
		Date: "2025-07-20",
		Sections: map[string][]string{
			"Tomorrow's Priority": {"internship applications"},
		},
		BusyEvents: []contract.BusyEventContext{
			{Title: "Standup", StartTime: "09:00", EndTime: "09:30"},
		},
		FreeWindows: []contract.FreeWindowContext{
			{Time: "08:00-09:00", Minutes: 60},
		},
		ActionItems: []domain.ActionItem{
			{Title: "internship applications", SourceSection: "Tomorrow's Priority", EstimatedMinutes: 55},
		},
	}
}

func TestGeneratePlan_ParsesStructuredResponse(t *testing.T) {
	client := &fakeClient{text: "Here you go:\n```json\n" +
		`{"overview": "focus", "time_blocks": [{"time": "08:00-08:55", "activity": "Internship applications"}]}` +
		"\n```"}

	svc := NewService(client, 480, 1200)
	plan, err := svc.GeneratePlan(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, "focus", plan.Overview)
	require.Len(t, plan.TimeBlocks, 1)
	assert.Equal(t, "08:00-08:55", plan.TimeBlocks[0].Time)

	assert.Equal(t, llm.TaskDailyPlan, client.lastReq.Task)
	assert.Contains(t, client.lastReq.UserPrompt, "2025-07-20")
	assert.Contains(t, client.lastReq.UserPrompt, "WORKING HOURS TO PLAN: 08:00-20:00")
	assert.Contains(t, client.lastReq.UserPrompt, "internship applications")
	assert.Contains(t, client.lastReq.UserPrompt, "Standup")
}

func TestGeneratePlan_FreeTextResponseIsError(t *testing.T) {
	client := &fakeClient{text: "I think you should focus on internships tomorrow."}

	svc := NewService(client, 480, 1200)
	_, err := svc.GeneratePlan(context.Background(), testInput())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingPayload))
}

func TestGeneratePlan_EmptyTimeBlocksIsError(t *testing.T) {
	client := &fakeClient{text: `{"overview": "nothing", "time_blocks": []}`}

	svc := NewService(client, 480, 1200)
	_, err := svc.GeneratePlan(context.Background(), testInput())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingPayload))
}

func TestGeneratePlan_ClientErrorPropagates(t *testing.T) {
	client := &fakeClient{err: llm.ErrProviderUnavailable}

	svc := NewService(client, 480, 1200)
	_, err := svc.GeneratePlan(context.Background(), testInput())
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrProviderUnavailable))
}

func TestReflect(t *testing.T) {
	client := &fakeClient{text: "  You keep shipping late at night.\n"}

	svc := NewService(client, 480, 1200)
	got, err := svc.Reflect(context.Background(), map[string][]string{
		"General": {"stayed up until 2am debugging"},
	})
	require.NoError(t, err)
	assert.Equal(t, "You keep shipping late at night.", got)
	assert.Equal(t, llm.TaskReflection, client.lastReq.Task)
}
