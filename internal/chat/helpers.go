package chat

import (
	"context"
	"io"
	"time"

	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/document"
	"github.com/akolanti/DocChat/internal/domain/commonModels"
	"github.com/akolanti/DocChat/internal/metrics"
	"github.com/akolanti/DocChat/internal/prompt"
	"github.com/akolanti/DocChat/pkg/logger_i"
)

func (s *service) awaitingContext(log *logger_i.Logger) string {
	log.Debug("No document loaded, skipping generation")
	metrics.CountAskOutcome(metrics.OutcomeNoDocument)
	return NoDocumentMessage
}

// ready returns the answer and, on failure, the diagnostic for the caller.
func (s *service) ready(ctx context.Context, log *logger_i.Logger, docContent string, question string) (string, string) {
	answer, err := s.executeLLMStep(ctx, log, prompt.Build(docContent, question))
	if err != nil {
		log.Error("LLM_GENERATION_FAILURE", "provider", s.llmProvider.Name(), "error", err)
		metrics.CountAskOutcome(metrics.OutcomeFailed)
		return ApologyMessage, err.Error()
	}
	metrics.CountAskOutcome(metrics.OutcomeAnswered)
	return answer, ""
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, p string) (string, error) {
	log.Debug("Calling LLM", "provider", s.llmProvider.Name(), "prompt_length", len(p))

	generationContext, cancel := context.WithTimeout(ctx, config.GenerationTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(generationContext, p)
}

func (s *service) executeLoadStep(log *logger_i.Logger, name string, r io.Reader) (commonModels.Document, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_load", time.Since(start)) }()

	doc, err := document.Load(name, r)
	if err != nil {
		log.Warn("Document load failed", "error", err)
		metrics.CountDocumentLoad(string(doc.ContentType), false)
		return doc, err
	}
	metrics.CountDocumentLoad(string(doc.ContentType), true)
	return doc, nil
}
