package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxchat/backend/domain"
	"github.com/voxchat/backend/llm"
)

func TestBuildWindowChronologicalAndBounded(t *testing.T) {
	svc, st := newTestService(t, &llm.MockGenerator{})
	svc.cfg.HistoryWindow = 4
	ctx := context.Background()

	session, err := st.CreateSession(ctx, "u1", "Chat")
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		_, err := st.CreateMessage(ctx, session.ID, domain.RoleUser, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	turns, err := svc.buildWindow(ctx, session.ID, false)
	require.NoError(t, err)
	require.Len(t, turns, 4)
	assert.Equal(t, "msg 2", turns[0].Text)
	assert.Equal(t, "msg 5", turns[3].Text)
}

func TestBuildWindowExcludesNewest(t *testing.T) {
	svc, st := newTestService(t, &llm.MockGenerator{})
	ctx := context.Background()

	session, err := st.CreateSession(ctx, "u1", "Chat")
	require.NoError(t, err)
	_, err = st.CreateMessage(ctx, session.ID, domain.RoleUser, "earlier")
	require.NoError(t, err)
	_, err = st.CreateMessage(ctx, session.ID, domain.RoleUser, "just persisted")
	require.NoError(t, err)

	turns, err := svc.buildWindow(ctx, session.ID, true)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "earlier", turns[0].Text)
}

func TestBuildWindowEmptySession(t *testing.T) {
	svc, st := newTestService(t, &llm.MockGenerator{})
	ctx := context.Background()

	session, err := st.CreateSession(ctx, "u1", "Chat")
	require.NoError(t, err)

	turns, err := svc.buildWindow(ctx, session.ID, true)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestBuildWindowRoleMapping(t *testing.T) {
	svc, st := newTestService(t, &llm.MockGenerator{})
	ctx := context.Background()

	session, err := st.CreateSession(ctx, "u1", "Chat")
	require.NoError(t, err)
	_, err = st.CreateMessage(ctx, session.ID, domain.RoleSystem, "context note")
	require.NoError(t, err)
	_, err = st.CreateMessage(ctx, session.ID, domain.RoleUser, "question")
	require.NoError(t, err)
	_, err = st.CreateMessage(ctx, session.ID, domain.RoleAssistant, "answer")
	require.NoError(t, err)

	turns, err := svc.buildWindow(ctx, session.ID, false)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, llm.RoleUser, turns[0].Role)
	assert.Equal(t, llm.RoleUser, turns[1].Role)
	assert.Equal(t, llm.RoleModel, turns[2].Role)
}

func TestTrimToBudgetKeepsNewest(t *testing.T) {
	svc, st := newTestService(t, &llm.MockGenerator{})
	// A budget small enough that the long old messages cannot fit under
	// either token counter, while the short newest one always does.
	svc.cfg.HistoryTokenBudget = 200
	ctx := context.Background()

	session, err := st.CreateSession(ctx, "u1", "Chat")
	require.NoError(t, err)
	long := strings.Repeat("word ", 800)
	_, err = st.CreateMessage(ctx, session.ID, domain.RoleUser, long)
	require.NoError(t, err)
	_, err = st.CreateMessage(ctx, session.ID, domain.RoleAssistant, long)
	require.NoError(t, err)
	_, err = st.CreateMessage(ctx, session.ID, domain.RoleUser, "hi")
	require.NoError(t, err)

	turns, err := svc.buildWindow(ctx, session.ID, false)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "hi", turns[0].Text)
}

func TestTrimToBudgetDisabled(t *testing.T) {
	svc, _ := newTestService(t, &llm.MockGenerator{})
	svc.cfg.HistoryTokenBudget = 0

	messages := []domain.Message{
		{Content: strings.Repeat("a", 10000)},
		{Content: strings.Repeat("b", 10000)},
	}
	kept := svc.trimToBudget(messages)
	assert.Len(t, kept, 2)
}
