package chat

import (
	"context"
	"io"

	"github.com/akolanti/DocChat/internal/domain/chatModel"
	"github.com/akolanti/DocChat/internal/domain/commonModels"
	"github.com/akolanti/DocChat/internal/llm"
	"github.com/akolanti/DocChat/pkg/logger_i"
)

const (
	NoDocumentMessage = "Please upload a file before asking a question."
	ApologyMessage    = "Sorry, I ran into a problem while processing your request. Please try again."
)

// Service is the only thing workers and handlers see. The backend client
// stays private to service.
type Service interface {
	// Ask appends the question and then the answer to the session transcript.
	// It always adds exactly two turns.
	Ask(ctx context.Context, session *chatModel.Session, question string) chatModel.Exchange
	// LoadDocument replaces the session document, or clears it when the
	// upload cannot be decoded.
	LoadDocument(ctx context.Context, session *chatModel.Session, name string, r io.Reader) (commonModels.Document, error)
}

type service struct {
	llmProvider llm.Provider
	logger      *logger_i.Logger
}

func NewService(provider llm.Provider) Service {
	return &service{
		llmProvider: provider,
		logger:      logger_i.NewLogger("Chat Service"),
	}
}

func (s *service) Ask(ctx context.Context, session *chatModel.Session, question string) chatModel.Exchange {
	log := s.logger.WithTrace(ctx).With("sessionId", session.Id)

	exchange := chatModel.Exchange{User: chatModel.NewTurn(chatModel.RoleUser, question)}
	session.Append(exchange.User)

	var answer string
	if !session.HasDocument() {
		answer = s.awaitingContext(log)
	} else {
		answer, exchange.Notice = s.ready(ctx, log, session.Document.Content, question)
	}

	exchange.Assistant = chatModel.NewTurn(chatModel.RoleAssistant, answer)
	session.Append(exchange.Assistant)
	return exchange
}

func (s *service) LoadDocument(ctx context.Context, session *chatModel.Session, name string, r io.Reader) (commonModels.Document, error) {
	log := s.logger.WithTrace(ctx).With("sessionId", session.Id, "document", name)

	doc, err := s.executeLoadStep(log, name, r)
	if err != nil {
		session.ClearDocument()
		return commonModels.Document{}, err
	}
	session.SetDocument(doc)
	log.Info("Document loaded", "bytes", doc.Size, "type", doc.ContentType)
	return doc, nil
}
