// Package assistant turns free-text chat messages into executed booking
// actions. The external language model only classifies; every state change
// and every catalog read happens in the executor, which treats the
// classifier output as untrusted input.
package assistant

import (
	"context"

	"medibook/models"
	"medibook/utils"
)

// Turn is one prior message in the conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one inbound chat message with its session identity and the
// caller's location, if known.
type Request struct {
	SessionID string
	Message   string
	History   []Turn
	Origin    models.Coordinates
}

// Service is the conversational entry point.
type Service interface {
	ProcessMessage(ctx context.Context, req Request) models.ChatResult
}

// IntentClassifier resolves a free-text message into a structured intent for
// the given flow. Implementations call an external model; the stub used in
// tests does not.
type IntentClassifier interface {
	Classify(ctx context.Context, flow models.Flow, req Request, session models.SessionState) (models.Intent, error)
}

// DefaultAssistantService wires the classifier, the executor and the
// conversation context store.
type DefaultAssistantService struct {
	classifier IntentClassifier
	executor   *Executor
	contexts   ContextStore
}

// NewAssistantService builds the service. The context store may be nil, in
// which case only the caller-supplied history reaches the classifier.
func NewAssistantService(classifier IntentClassifier, executor *Executor, contexts ContextStore) *DefaultAssistantService {
	return &DefaultAssistantService{
		classifier: classifier,
		executor:   executor,
		contexts:   contexts,
	}
}

// ProcessMessage classifies the message and executes the resulting intent.
// Classifier failures degrade to a clarification reply; they never surface
// as transport errors.
func (s *DefaultAssistantService) ProcessMessage(ctx context.Context, req Request) models.ChatResult {
	logger := utils.GetLogger().Sugar()

	if s.contexts != nil {
		stored, err := s.contexts.History(ctx, req.SessionID)
		if err != nil {
			logger.Warnf("context history for %s unavailable: %v", req.SessionID, err)
		} else if len(req.History) == 0 {
			req.History = stored
		}
	}

	flow := DetectFlow(req.Message)
	session := s.executor.SessionState(req.SessionID)

	intent, err := s.classifier.Classify(ctx, flow, req, session)
	if err != nil {
		logger.Warnf("classification failed for session %s: %v", req.SessionID, err)
		intent = models.ChatIntent{Reply: "Sorry, I didn't catch that. Could you rephrase?"}
	}

	result := s.executor.Execute(flow, intent, req.SessionID, req.Origin)

	if s.contexts != nil {
		turns := []Turn{
			{Role: "user", Content: req.Message},
			{Role: "assistant", Content: result.Message},
		}
		if err := s.contexts.Append(ctx, req.SessionID, turns); err != nil {
			logger.Warnf("context append for %s failed: %v", req.SessionID, err)
		}
	}
	return result
}
