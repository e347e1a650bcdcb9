package service

import (
	"context"
	"fmt"

	"grant-advisor-be/internal/constant"
	"grant-advisor-be/internal/dto"
	"grant-advisor-be/internal/pkg/logger"
	"grant-advisor-be/internal/pkg/serverutils"
	"grant-advisor-be/internal/repository/memory"
	"grant-advisor-be/pkg/knowledge"
	"grant-advisor-be/pkg/llm"
	"grant-advisor-be/pkg/rag/history"
	"grant-advisor-be/pkg/rag/prompt"
	"grant-advisor-be/pkg/rag/retriever"
	"grant-advisor-be/pkg/store"

	"github.com/google/uuid"
)

// IAdvisorService defines the advisory chat service interface
type IAdvisorService interface {
	CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetTranscript(ctx context.Context, sessionId uuid.UUID) ([]*dto.TranscriptTurnResponse, error)
	ResetSession(ctx context.Context, sessionId uuid.UUID) error
	SetPendingItem(ctx context.Context, sessionId uuid.UUID, request *dto.SetPendingItemRequest) error
	SendChat(ctx context.Context, sessionId uuid.UUID, message string, onDelta func(accumulated string)) (*dto.SendChatResponse, error)
	AttachReviewReport(ctx context.Context, sessionId uuid.UUID) (*dto.TranscriptTurnResponse, error)
}

// advisorService coordinates retrieval, prompt composition and the
// streaming generation cycle. One submission runs one retrieval pass,
// one composition and one generation call to completion; there is no
// background work.
type advisorService struct {
	knowledgeStore *knowledge.Store
	llmProvider    llm.LLMProvider
	sessionRepo    *memory.SessionRepository
	sysLogger      logger.ILogger
}

func NewAdvisorService(
	knowledgeStore *knowledge.Store,
	llmProvider llm.LLMProvider,
	sessionRepo *memory.SessionRepository,
	sysLogger logger.ILogger,
) IAdvisorService {
	return &advisorService{
		knowledgeStore: knowledgeStore,
		llmProvider:    llmProvider,
		sessionRepo:    sessionRepo,
		sysLogger:      sysLogger,
	}
}

// CreateSession opens a new advisory session bound to a grant and form.
func (s *advisorService) CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	if request.FormKey != constant.GeneralFormKey {
		if _, ok := s.knowledgeStore.Form(request.FormKey); !ok {
			return nil, fmt.Errorf("unknown form key %q: %w", request.FormKey, serverutils.ErrNotFound)
		}
	}

	session := &store.Session{
		ID:            uuid.New().String(),
		SelectedGrant: request.Grant,
		SelectedForm:  request.FormKey,
	}
	s.sessionRepo.Save(session)

	id, _ := uuid.Parse(session.ID)
	return &dto.CreateSessionResponse{
		Id:      id,
		Grant:   session.SelectedGrant,
		FormKey: session.SelectedForm,
	}, nil
}

func (s *advisorService) GetTranscript(ctx context.Context, sessionId uuid.UUID) ([]*dto.TranscriptTurnResponse, error) {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.TranscriptTurnResponse, 0, len(session.Turns))
	for _, turn := range session.Turns {
		response = append(response, &dto.TranscriptTurnResponse{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	return response, nil
}

func (s *advisorService) ResetSession(ctx context.Context, sessionId uuid.UUID) error {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return err
	}
	session.Reset()
	s.sessionRepo.Save(session)
	return nil
}

func (s *advisorService) SetPendingItem(ctx context.Context, sessionId uuid.UUID, request *dto.SetPendingItemRequest) error {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return err
	}
	// Last write wins when an unconsumed item is already pending
	session.SetPendingItem(knowledge.Item{
		ItemID: request.ItemID,
		Label:  request.Label,
	})
	s.sessionRepo.Save(session)
	return nil
}

// SendChat runs one full turn. The user turn is committed to the
// transcript before the generation call; the assistant turn is committed
// only after the stream completes. onDelta (optional) receives the full
// accumulated text after every fragment, enabling typed-in-place
// rendering downstream.
func (s *advisorService) SendChat(ctx context.Context, sessionId uuid.UUID, message string, onDelta func(string)) (*dto.SendChatResponse, error) {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return nil, err
	}

	userText := message
	if userText == "" {
		item, ok := session.ConsumePendingItem()
		if !ok {
			return nil, fmt.Errorf("message is empty and no pending item is set")
		}
		userText = fmt.Sprintf(constant.QuickAskPromptFormat, item.ItemID, item.Label)
	}

	// Commit the user turn first so it participates in the exchange
	// history and survives a failed stream as a dangling entry.
	session.AppendTurn(store.RoleUser, userText)
	s.sessionRepo.Save(session)

	results := retriever.Retrieve(userText, s.knowledgeStore.Chunks(), retriever.DefaultLimit)
	retrievalText := retriever.Render(results)

	form, _ := s.knowledgeStore.Form(session.SelectedForm)
	systemPrompt := prompt.BuildSystemPrompt(
		session.SelectedGrant,
		session.SelectedForm,
		form.RawJSON(),
		s.knowledgeStore.Rules(),
		retrievalText,
	)

	exchanges := history.BuildExchanges(session.Turns, userText)

	s.sysLogger.Info("Advisor", "Starting chat stream", map[string]interface{}{
		"session_id":       session.ID,
		"retrieved_chunks": len(results),
		"exchanges":        len(exchanges),
	})

	fragments, errs := s.llmProvider.ChatStream(ctx, systemPrompt, exchanges)

	accumulated := ""
	for fragment := range fragments {
		accumulated += fragment
		if onDelta != nil {
			onDelta(accumulated)
		}
	}
	if err := <-errs; err != nil {
		// No partial assistant turn is committed; the transcript keeps
		// the dangling user turn and the next submission carries it.
		s.sysLogger.Error("Advisor", "Chat stream failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	session.AppendTurn(store.RoleAssistant, accumulated)
	s.sessionRepo.Save(session)

	id, _ := uuid.Parse(session.ID)
	return &dto.SendChatResponse{
		SessionId: id,
		Sent:      userText,
		Reply:     accumulated,
	}, nil
}

// AttachReviewReport injects the stored review report into the
// transcript as an assistant turn. This can create consecutive
// assistant entries, which transcript consumers tolerate.
func (s *advisorService) AttachReviewReport(ctx context.Context, sessionId uuid.UUID) (*dto.TranscriptTurnResponse, error) {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return nil, err
	}
	if session.ReviewReport == "" {
		return nil, fmt.Errorf("no review report to attach")
	}

	content := constant.ReviewReportTranscriptPrefix + session.ReviewReport
	session.AppendTurn(store.RoleAssistant, content)
	session.ReviewReport = ""
	s.sessionRepo.Save(session)

	return &dto.TranscriptTurnResponse{
		Role:    store.RoleAssistant,
		Content: content,
	}, nil
}

func (s *advisorService) loadSession(sessionId uuid.UUID) (*store.Session, error) {
	session, found := s.sessionRepo.Get(sessionId.String())
	if !found {
		return nil, fmt.Errorf("session %s: %w", sessionId, serverutils.ErrNotFound)
	}
	return session, nil
}
