package impl

import (
	"context"
	"log/slog"

	deliverycontext "atelier/internal/delivery/context"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/domain/service"
	"atelier/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	sessions  service.SessionResolver
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	sessions service.SessionResolver,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager: txManager,
		hasher:    hasher,
		sessions:  sessions,
		logger:    logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the posted credentials against the stored bcrypt hash and
// issues a session token. Unknown emails and wrong passwords produce the
// same error so the response leaks nothing about which accounts exist.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	output := &usecase.LoginOutput{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profile, err := repoFactory.ProfileRepo().FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
			}

			return errors.Wrap(err, "failed to find profile")
		}

		if !srv.hasher.Check(input.Password, profile.PasswordHash) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
		}

		if !profile.IsAdmin() {
			return domainerrors.ErrAuthorizationDenied.WrapMessage("profile is not an admin")
		}

		output.Profile = profile

		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := srv.sessions.Issue(output.Profile.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("session issue failed")
	}
	output.Token = token

	srv.log(ctx).Info("Admin signed in",
		slog.Any("profile_id", output.Profile.ID),
		slog.String("email", output.Profile.Email),
	)

	return output, nil
}
