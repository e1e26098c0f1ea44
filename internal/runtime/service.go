package runtime

import (
	"context"

	"tripagent-icongen/internal/app"
	"tripagent-icongen/internal/config"
	"tripagent-icongen/internal/logging"
)

type Service interface {
	RunContext(ctx context.Context) error
	RequestSweep(reason string)
}

func NewService(opts config.Options, logger *logging.Logger) (Service, error) {
	return NewServiceWithHooks(opts, logger, StartHooks{})
}

func NewServiceWithHooks(opts config.Options, logger *logging.Logger, hooks StartHooks) (Service, error) {
	if logger == nil {
		panic("runtime.NewServiceWithHooks: logger must not be nil")
	}
	if err := config.ValidateRequired(opts); err != nil {
		return nil, err
	}
	return app.New(opts, logger, app.Callbacks{
		OnTargetsUpdate: hooks.OnTargetsUpdate,
		OnStatusChange:  hooks.OnStatus,
	}), nil
}
