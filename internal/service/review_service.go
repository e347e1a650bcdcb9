package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"grant-advisor-be/internal/constant"
	"grant-advisor-be/internal/dto"
	"grant-advisor-be/internal/pkg/logger"
	"grant-advisor-be/internal/pkg/serverutils"
	"grant-advisor-be/internal/repository/memory"
	"grant-advisor-be/pkg/extract"
	"grant-advisor-be/pkg/knowledge"
	"grant-advisor-be/pkg/llm"
	"grant-advisor-be/pkg/rag/prompt"

	"github.com/google/uuid"
)

// IReviewService defines the document-review service interface
type IReviewService interface {
	ReviewDocument(ctx context.Context, sessionId uuid.UUID, fileName string, data []byte) (*dto.ReviewResponse, error)
}

type reviewService struct {
	knowledgeStore *knowledge.Store
	llmProvider    llm.LLMProvider
	sessionRepo    *memory.SessionRepository
	sysLogger      logger.ILogger
	reviewModel    string
}

func NewReviewService(
	knowledgeStore *knowledge.Store,
	llmProvider llm.LLMProvider,
	sessionRepo *memory.SessionRepository,
	sysLogger logger.ILogger,
	reviewModel string,
) IReviewService {
	return &reviewService{
		knowledgeStore: knowledgeStore,
		llmProvider:    llmProvider,
		sessionRepo:    sessionRepo,
		sysLogger:      sysLogger,
		reviewModel:    reviewModel,
	}
}

// ReviewDocument audits an uploaded file against the session's form and
// the rule set. An unsupported extension or a failed extraction is
// reported as the review content, not as a request error, so the rest
// of the interface stays usable.
func (s *reviewService) ReviewDocument(ctx context.Context, sessionId uuid.UUID, fileName string, data []byte) (*dto.ReviewResponse, error) {
	session, found := s.sessionRepo.Get(sessionId.String())
	if !found {
		return nil, fmt.Errorf("session %s: %w", sessionId, serverutils.ErrNotFound)
	}

	form, _ := s.knowledgeStore.Form(session.SelectedForm)
	itemsJSON, err := form.ItemsJSON()
	if err != nil {
		return nil, err
	}
	reviewPrompt := prompt.BuildReviewPrompt(session.SelectedForm, itemsJSON, s.knowledgeStore.Rules())

	report, err := s.runReview(ctx, fileName, data, reviewPrompt)
	if err != nil {
		s.sysLogger.Error("Review", "Review generation failed", map[string]interface{}{
			"session_id": session.ID,
			"file":       fileName,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("review failed: %w", err)
	}

	session.ReviewReport = report
	s.sessionRepo.Save(session)

	return &dto.ReviewResponse{
		SessionId: sessionId,
		FileName:  fileName,
		Report:    report,
	}, nil
}

func (s *reviewService) runReview(ctx context.Context, fileName string, data []byte, reviewPrompt string) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		// The PDF goes to the model as-is; no local extraction
		return s.llmProvider.GenerateWithBlob(ctx, reviewPrompt, "application/pdf", data,
			constant.ReviewPDFInstruction, llm.WithModel(s.reviewModel))

	case ".docx":
		text, err := extract.Docx(data)
		if err != nil {
			return "❌ " + err.Error(), nil
		}
		return s.generateFromText(ctx, reviewPrompt, fmt.Sprintf(constant.ReviewDocxFormat, text))

	case ".xlsx":
		text, err := extract.Xlsx(data)
		if err != nil {
			return "❌ " + err.Error(), nil
		}
		return s.generateFromText(ctx, reviewPrompt, fmt.Sprintf(constant.ReviewXlsxFormat, text))

	default:
		return constant.UnsupportedFormatMessage, nil
	}
}

func (s *reviewService) generateFromText(ctx context.Context, system, userText string) (string, error) {
	return s.llmProvider.Chat(ctx, system, []llm.Message{
		{Role: constant.ChatMessageRoleUser, Content: userText},
	}, llm.WithModel(s.reviewModel))
}
