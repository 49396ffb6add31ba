package api

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/terraincognita07/nibble/internal/i18n"
	"github.com/terraincognita07/nibble/internal/services"
)

type Handler struct {
	services     Services
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	logger       *slog.Logger
	loginLimiter *attemptLimiter
}

type HandlerConfig struct {
	Services     Services
	SecretKey    string
	Location     *time.Location
	I18n         *i18n.Manager
	CookieSecure bool
	Logger       *slog.Logger
}

func NewHandler(config HandlerConfig) (*Handler, error) {
	if config.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if config.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if err := config.Services.validate(); err != nil {
		return nil, err
	}

	location := config.Location
	if location == nil {
		location = time.Local
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Handler{
		services:     config.Services,
		secretKey:    []byte(config.SecretKey),
		location:     location,
		cookieSecure: config.CookieSecure,
		i18n:         config.I18n,
		logger:       logger.With("component", "api"),
		loginLimiter: newAttemptLimiter(),
	}, nil
}

func (handler *Handler) labeler(language string) services.SeriesLabeler {
	return handler.i18n.Labeler(language)
}
