package adapter

import (
	"github.com/akolanti/DocChat/internal/api"
	"github.com/akolanti/DocChat/internal/document"
	"github.com/akolanti/DocChat/internal/domain/chatModel"
	"github.com/akolanti/DocChat/internal/domain/commonModels"
)

func ToCreateSessionResponse(session *chatModel.Session) api.CreateSessionResponse {
	return api.CreateSessionResponse{
		SessionId: session.Id,
		CreatedAt: session.CreatedAt,
	}
}

func ToDocumentResponse(doc commonModels.Document) api.DocumentResponse {
	return api.DocumentResponse{
		Name:     doc.Name,
		Type:     string(doc.ContentType),
		Size:     doc.Size,
		LoadedAt: doc.LoadedAt,
		Preview:  document.Preview(doc.Content),
	}
}

func ToSessionResponse(session *chatModel.Session) api.SessionResponse {
	transcript := session.Transcript()
	turns := make([]api.TurnResponse, 0, len(transcript))
	for _, turn := range transcript {
		turns = append(turns, api.TurnResponse{
			Role:      string(turn.Role),
			Content:   turn.Content,
			CreatedAt: turn.CreatedAt,
		})
	}

	res := api.SessionResponse{
		SessionId:       session.Id,
		CreatedAt:       session.CreatedAt,
		Pending:         session.Pending,
		PendingQuestion: session.PendingQuestion,
		Transcript:      turns,
	}
	if session.HasDocument() {
		doc := ToDocumentResponse(*session.Document)
		res.Document = &doc
	}
	return res
}
