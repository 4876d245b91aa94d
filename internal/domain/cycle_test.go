package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/model"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/errorx"
)

func Test_cycleDomain_CreateNewCycle(t *testing.T) {
	d := newTestDomains()
	ctx := d.ctx

	status, err := d.cycle.GetCycleStatus(ctx, &model.GetCycleStatusRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Nil(t, status.Cycle)
	require.True(t, status.NeedsNewCycle)

	resp, err := d.cycle.CreateNewCycle(ctx, &model.CreateNewCycleRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Cycle.CycleNumber)
	require.Equal(t, string(entity.CycleActive), resp.Cycle.Status)
	first := resp.Cycle

	_, err = d.cycle.CreateNewCycle(ctx, &model.CreateNewCycleRequest{UserID: "user1"})
	require.True(t, errorx.IsCode(err, errorx.AlreadyExists))

	status, err = d.cycle.GetCycleStatus(ctx, &model.GetCycleStatusRequest{UserID: "user1"})
	require.NoError(t, err)
	require.False(t, status.NeedsNewCycle)
	require.Equal(t, 1, status.DaysElapsed)
	require.Equal(t, 29, status.DaysRemaining)

	packs := d.publisher.Packs(model.CycleCreatedTopic)
	require.Len(t, packs, 1)
	require.Equal(t, "user1", string(packs[0].Pack.Key))

	var event model.CycleCreatedEvent
	require.NoError(t, json.Unmarshal(packs[0].Pack.Msg, &event))
	require.Equal(t, first.ID, event.CycleID)
	require.Equal(t, 1, event.CycleNumber)
	require.NotZero(t, event.ID)
}

func Test_cycleDomain_Renewal(t *testing.T) {
	d := newTestDomains()
	ctx := d.ctx

	resp, err := d.cycle.CreateNewCycle(ctx, &model.CreateNewCycleRequest{UserID: "user1"})
	require.NoError(t, err)
	first := resp.Cycle

	d.clock.Advance(30)

	needs, err := d.cycle.NeedsNewCycle(ctx, &model.NeedsNewCycleRequest{UserID: "user1"})
	require.NoError(t, err)
	require.True(t, needs.NeedsNewCycle)

	// A forced number which is already taken fails and leaves nothing behind.
	_, err = d.cycle.CreateNewCycle(ctx, &model.CreateNewCycleRequest{UserID: "user1", CycleNumber: 1})
	require.True(t, errorx.IsCode(err, errorx.AlreadyExists))

	stored, err := repository.NewCycleRepository().GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotEqual(t, entity.CycleCompleted, stored.Status)

	_, err = d.cycle.CreateNewCycle(ctx, &model.CreateNewCycleRequest{UserID: "user1", CycleNumber: 5})
	require.True(t, errorx.IsCode(err, errorx.BadRequest))

	resp, err = d.cycle.CreateNewCycle(ctx, &model.CreateNewCycleRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Cycle.CycleNumber)

	stored, err = repository.NewCycleRepository().GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, entity.CycleCompleted, stored.Status)

	current, err := d.cycle.GetCurrentCycle(ctx, &model.GetCurrentCycleRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Equal(t, resp.Cycle.ID, current.Cycle.ID)

	require.Len(t, d.publisher.Packs(model.CycleCreatedTopic), 2)
}

func Test_cycleDomain_ExpireCycle(t *testing.T) {
	d := newTestDomains()
	ctx := d.ctx

	resp, err := d.cycle.CreateNewCycle(ctx, &model.CreateNewCycleRequest{UserID: "user1"})
	require.NoError(t, err)

	expired, err := d.cycle.ExpireCycle(ctx, &model.ExpireCycleRequest{CycleID: resp.Cycle.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.CycleExpired), expired.Cycle.Status)

	_, err = d.cycle.ExpireCycle(ctx, &model.ExpireCycleRequest{CycleID: resp.Cycle.ID})
	require.True(t, errorx.IsCode(err, errorx.BadRequest))

	_, err = d.cycle.ExpireCycle(ctx, &model.ExpireCycleRequest{CycleID: "unknown"})
	require.True(t, errorx.IsCode(err, errorx.NotFound))

	current, err := d.cycle.GetCurrentCycle(ctx, &model.GetCurrentCycleRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Nil(t, current.Cycle)
}

func Test_cycleDomain_Onboarding(t *testing.T) {
	d := newTestDomains()
	ctx := d.ctx

	marked, err := d.cycle.MarkCycleOnboardingComplete(ctx, &model.MarkCycleOnboardingCompleteRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Nil(t, marked.Cycle)

	resp, err := d.cycle.CreateNewCycle(ctx, &model.CreateNewCycleRequest{UserID: "user1"})
	require.NoError(t, err)

	completed, err := d.cycle.CompleteCycleOnboarding(ctx, &model.CompleteCycleOnboardingRequest{
		CycleID:   resp.Cycle.ID,
		Scores:    map[string]any{"sleep": 4.0},
		Phenotype: "owl",
		ProgramID: "program-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, completed.Cycle.OnboardingCompletedAt)
	require.Equal(t, "owl", completed.Cycle.Phenotype)
	require.Equal(t, "program-1", completed.Cycle.ProgramID)

	d.clock.Advance(1)
	marked, err = d.cycle.MarkCycleOnboardingComplete(ctx, &model.MarkCycleOnboardingCompleteRequest{UserID: "user1"})
	require.NoError(t, err)
	completedAt, err := time.Parse(model.DefaultTimeLayout, marked.Cycle.OnboardingCompletedAt)
	require.NoError(t, err)
	require.True(t, start.Equal(completedAt))
	require.Equal(t, "owl", marked.Cycle.Phenotype)
}
