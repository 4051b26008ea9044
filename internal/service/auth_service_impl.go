package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/haven/internal/auth"
	"github.com/alexanderramin/haven/internal/domain"
)

type authService struct {
	api      AuthAPI
	session  SessionReader
	observer UseCaseObserver
}

func NewAuthService(client AuthAPI, session SessionReader, observers ...UseCaseObserver) AuthService {
	return &authService{api: client, session: session, observer: useCaseObserverOrNoop(observers)}
}

func (s *authService) Login(ctx context.Context, email, password string, userType domain.UserType) (user *domain.User, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "login",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"user_type": string(userType)},
		})
	}()
	return s.api.Login(ctx, email, password, userType)
}

func (s *authService) Signup(ctx context.Context, req domain.SignupRequest) (user *domain.User, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "signup",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"user_type": string(req.UserType)},
		})
	}()
	return s.api.Signup(ctx, req)
}

func (s *authService) Logout(ctx context.Context) error {
	return s.api.Logout(ctx)
}

func (s *authService) Me(ctx context.Context) (*domain.User, error) {
	return s.api.Me(ctx)
}

func (s *authService) Current(ctx context.Context) (*domain.User, error) {
	user, err := s.session.CurrentUser(ctx)
	if errors.Is(err, auth.ErrNoSession) {
		return nil, nil
	}
	return user, err
}
