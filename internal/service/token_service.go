package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// DefaultAuthMessage is returned when the introspection endpoint is
// unreachable or does not supply a message of its own.
const DefaultAuthMessage = "No tienes permisos para acceder a este recurso."

// TokenOutcome tags the possible results of a remote token validation.
type TokenOutcome int

const (
	OutcomeOK TokenOutcome = iota
	OutcomeTransportFailure
	OutcomeHTTPFailure
)

// TokenResult is the normalized outcome of a token introspection call.
// Usuario is only meaningful when Outcome is OutcomeOK; an empty
// Usuario on a successful call means the token is not valid.
type TokenResult struct {
	Outcome TokenOutcome
	Status  int
	Message string
	Usuario string
}

// TokenValidator validates bearer tokens against a remote
// introspection endpoint.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (TokenResult, error)
}

type tokenService struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewTokenService creates a TokenValidator calling the given
// introspection URL. client may be nil, in which case a plain client
// with no timeout is used; request deadlines are an outer layer's
// concern.
func NewTokenService(url string, client *http.Client, logger *zap.Logger) TokenValidator {
	if client == nil {
		client = &http.Client{}
	}
	return &tokenService{
		url:    url,
		client: client,
		logger: logger,
	}
}

// Validate forwards the caller's token verbatim as the authorization
// header on a single GET. Transport and HTTP failures are folded into
// the result, never returned as errors; the only error path is a
// request that cannot be constructed.
func (s *tokenService) Validate(ctx context.Context, token string) (TokenResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return TokenResult{}, fmt.Errorf("failed to build introspection request: %w", err)
	}
	req.Header.Set("authorization", token)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("Token introspection request failed", zap.Error(err))
		return TokenResult{
			Outcome: OutcomeTransportFailure,
			Status:  http.StatusInternalServerError,
			Message: DefaultAuthMessage,
		}, nil
	}
	defer resp.Body.Close()

	var body struct {
		Usuario string `json:"usuario"`
		Message string `json:"message"`
	}
	// A malformed body is tolerated; the zero values carry through.
	_ = json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode >= http.StatusBadRequest {
		message := body.Message
		if message == "" {
			message = DefaultAuthMessage
		}
		s.logger.Debug("Token introspection rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return TokenResult{
			Outcome: OutcomeHTTPFailure,
			Status:  resp.StatusCode,
			Message: message,
		}, nil
	}

	s.logger.Debug("Token introspection succeeded",
		zap.Int("status", resp.StatusCode),
		zap.String("usuario", body.Usuario),
	)
	return TokenResult{
		Outcome: OutcomeOK,
		Status:  resp.StatusCode,
		Usuario: body.Usuario,
	}, nil
}
