package service

import (
	"context"

	"github.com/enervue/enervue/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log *zap.Logger
}

type catalogService struct {
	log *zap.Logger
}

// New builds the static catalog service.
func New(p Params) domain.Service {
	return &catalogService{
		log: p.Log.Named("catalog.service"),
	}
}

func (s *catalogService) ListDeviceTemplates(ctx context.Context) []domain.DeviceTemplate {
	_ = ctx
	out := make([]domain.DeviceTemplate, len(deviceTemplates))
	copy(out, deviceTemplates)
	return out
}

func (s *catalogService) GetDeviceTemplate(ctx context.Context, deviceType domain.DeviceType) (*domain.DeviceTemplate, error) {
	_ = ctx
	tmpl, ok := templatesByType[deviceType]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return &tmpl, nil
}

func (s *catalogService) ListDeviceTemplatesByCategory(ctx context.Context, category domain.Category) []domain.DeviceTemplate {
	_ = ctx
	out := make([]domain.DeviceTemplate, 0, len(deviceTemplates))
	for _, tmpl := range deviceTemplates {
		if tmpl.Category == category {
			out = append(out, tmpl)
		}
	}
	return out
}

func (s *catalogService) ListScenarios(ctx context.Context) []domain.Scenario {
	_ = ctx
	out := make([]domain.Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

func (s *catalogService) GetScenario(ctx context.Context, key domain.ScenarioKey) (*domain.Scenario, error) {
	_ = ctx
	sc, ok := scenariosByKey[key]
	if !ok {
		return nil, domain.ErrScenarioNotFound
	}
	return &sc, nil
}
