package chat_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/DocChat/internal/chat"
	"github.com/akolanti/DocChat/internal/chat/chatmock"
	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/document"
	"github.com/akolanti/DocChat/internal/domain/chatModel"
	"github.com/akolanti/DocChat/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceCtx() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func sessionWithDocument(t *testing.T, s chat.Service, content string) *chatModel.Session {
	session := chatModel.NewSession("session-1")
	_, err := s.LoadDocument(traceCtx(), session, "doc.txt", strings.NewReader(content))
	require.NoError(t, err)
	return session
}

func assertAlternates(t *testing.T, transcript []chatModel.Turn) {
	t.Helper()
	for i, turn := range transcript {
		want := chatModel.RoleUser
		if i%2 == 1 {
			want = chatModel.RoleAssistant
		}
		assert.Equal(t, want, turn.Role, "turn %d", i)
	}
}

// Scenario A
func TestAsk_AnswersFromDocument(t *testing.T) {
	var gotPrompt string
	mLLM := &chatmock.MockLLM{OnGenerate: func(ctx context.Context, p string) (string, error) {
		gotPrompt = p
		return "Blue.", nil
	}}
	s := chat.NewService(mLLM)
	session := sessionWithDocument(t, s, "The sky is blue.")

	exchange := s.Ask(traceCtx(), session, "What color is the sky?")

	transcript := session.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, chatModel.RoleUser, transcript[0].Role)
	assert.Equal(t, "What color is the sky?", transcript[0].Content)
	assert.Equal(t, chatModel.RoleAssistant, transcript[1].Role)
	assert.Equal(t, "Blue.", transcript[1].Content)

	assert.Equal(t, "Blue.", exchange.Assistant.Content)
	assert.Empty(t, exchange.Notice)
	assert.Contains(t, gotPrompt, "The sky is blue.")
	assert.Contains(t, gotPrompt, "What color is the sky?")
	assert.Equal(t, 1, mLLM.CallCount())
}

// Scenario B and P2
func TestAsk_NoDocumentNeverCallsBackend(t *testing.T) {
	mLLM := &chatmock.MockLLM{}
	s := chat.NewService(mLLM)
	session := chatModel.NewSession("session-1")

	for _, q := range []string{"Hello", "", "What is in the file?", strings.Repeat("x", 10000)} {
		exchange := s.Ask(traceCtx(), session, q)
		assert.Equal(t, chat.NoDocumentMessage, exchange.Assistant.Content)
		assert.Empty(t, exchange.Notice)
	}

	assert.Equal(t, 0, mLLM.CallCount())
	assert.Equal(t, 8, session.Len())
	assertAlternates(t, session.Transcript())
}

// Scenario D and P5
func TestAsk_GenerationFailureIsContained(t *testing.T) {
	netErr := errors.New("dial tcp: connection refused")
	mLLM := &chatmock.MockLLM{OnGenerate: func(ctx context.Context, p string) (string, error) {
		return "", llm.NewGenerationError("mock", netErr)
	}}
	s := chat.NewService(mLLM)
	session := sessionWithDocument(t, s, "The sky is blue.")

	exchange := s.Ask(traceCtx(), session, "What color is the sky?")

	transcript := session.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, chat.ApologyMessage, transcript[1].Content)
	assert.NotContains(t, transcript[1].Content, "connection refused")
	assert.Contains(t, exchange.Notice, "connection refused")
}

// P1
func TestAsk_TranscriptGrowsByTwo(t *testing.T) {
	calls := 0
	mLLM := &chatmock.MockLLM{OnGenerate: func(ctx context.Context, p string) (string, error) {
		calls++
		if calls%3 == 0 {
			return "", errors.New("quota exceeded")
		}
		return fmt.Sprintf("answer %d", calls), nil
	}}
	s := chat.NewService(mLLM)
	session := sessionWithDocument(t, s, "context")

	for n := 1; n <= 10; n++ {
		s.Ask(traceCtx(), session, fmt.Sprintf("question %d", n))
		assert.Equal(t, 2*n, session.Len())
	}

	transcript := session.Transcript()
	assertAlternates(t, transcript)
	assert.Equal(t, "question 1", transcript[0].Content)
	assert.Equal(t, "answer 1", transcript[1].Content)
	assert.Equal(t, chat.ApologyMessage, transcript[5].Content)
	for i := 1; i < len(transcript); i++ {
		assert.False(t, transcript[i].CreatedAt.Before(transcript[i-1].CreatedAt))
	}
}

func TestAsk_GenerationHasDeadline(t *testing.T) {
	mLLM := &chatmock.MockLLM{OnGenerate: func(ctx context.Context, p string) (string, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(config.GenerationTimeout), deadline, 5*time.Second)
		return "ok", nil
	}}
	s := chat.NewService(mLLM)
	session := sessionWithDocument(t, s, "context")

	s.Ask(context.Background(), session, "q")
	assert.Equal(t, 1, mLLM.CallCount())
}

// Scenario C
func TestLoadDocument_InvalidEncodingClearsDocument(t *testing.T) {
	mLLM := &chatmock.MockLLM{}
	s := chat.NewService(mLLM)
	session := sessionWithDocument(t, s, "first document")

	_, err := s.LoadDocument(traceCtx(), session, "bad.txt", strings.NewReader("bad \xc3\x28 bytes"))

	var loadErr *document.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.NotEmpty(t, loadErr.Reason)
	assert.False(t, session.HasDocument())

	exchange := s.Ask(traceCtx(), session, "anything?")
	assert.Equal(t, chat.NoDocumentMessage, exchange.Assistant.Content)
	assert.Equal(t, 0, mLLM.CallCount())
}

func TestLoadDocument_ReplacesWholesale(t *testing.T) {
	var gotPrompt string
	mLLM := &chatmock.MockLLM{OnGenerate: func(ctx context.Context, p string) (string, error) {
		gotPrompt = p
		return "ok", nil
	}}
	s := chat.NewService(mLLM)
	session := sessionWithDocument(t, s, "old content")

	doc, err := s.LoadDocument(traceCtx(), session, "new.txt", strings.NewReader("new content"))
	require.NoError(t, err)
	assert.Equal(t, "new.txt", doc.Name)

	s.Ask(traceCtx(), session, "q")
	assert.Contains(t, gotPrompt, "new content")
	assert.NotContains(t, gotPrompt, "old content")
}
