package main

import (
	"context"
	"fmt"

	"ftms-portal/internal/adapters/api"
	"ftms-portal/internal/adapters/storage"
	"ftms-portal/internal/config"
	"ftms-portal/internal/core/services"
	"ftms-portal/internal/pkg/logger"

	"go.uber.org/zap"
)

// app wires the SDK together for one CLI invocation
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	session   *services.SessionService
	tasks     *api.TaskClient
	dashboard *services.DashboardService
}

// newApp loads configuration and assembles the client stack
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	zlog, err := logger.New(cfg.Logging.Development)
	if err != nil {
		return nil, err
	}

	tokens := storage.NewFileStore(cfg.Client.TokenFile)
	gw := api.NewGateway(cfg.Client.APIBaseURL, nil, tokens, zlog)
	authClient := api.NewAuthClient(gw)
	taskClient := api.NewTaskClient(gw)

	return &app{
		cfg:       cfg,
		log:       zlog,
		session:   services.NewSessionService(authClient, tokens, zlog),
		tasks:     taskClient,
		dashboard: services.NewDashboardService(taskClient),
	}, nil
}

// requireRoute bootstraps the session and asks the route guard whether
// the command's view is reachable.
func (a *app) requireRoute(ctx context.Context, path string) error {
	a.session.Bootstrap(ctx)

	route, ok := services.RouteByPath(path)
	if !ok {
		route = services.Route{Path: path}
	}

	switch services.ResolveRoute(a.session, route) {
	case services.RouteAllow:
		return nil
	case services.RouteLogin:
		return fmt.Errorf("not logged in; run 'portalcli login' first")
	case services.RouteDeny:
		return fmt.Errorf("role %s is not allowed to access %s", a.session.User().Role, path)
	default:
		return fmt.Errorf("session is still loading")
	}
}
