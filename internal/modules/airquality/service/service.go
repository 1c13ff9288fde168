package service

import (
	"context"
	"fmt"
	"log/slog"

	"airquality-server/internal/modules/airquality/chart"
	"airquality-server/internal/modules/airquality/repository"
	"airquality-server/internal/modules/airquality/types"
)

// Update is the dashboard's reaction to a parameter selection: the chart to
// draw and the text to show next to it.
type Update struct {
	Parameter string       `json:"parameter"`
	Known     bool         `json:"known"`
	Figure    chart.Figure `json:"figure"`
	Analysis  string       `json:"analysis"`
}

type AirQualityService interface {
	Parameters(ctx context.Context) ([]types.Parameter, error)
	Update(ctx context.Context, parameter string) (Update, error)
	Dataset(ctx context.Context) (types.Table, error)
}

type Service struct {
	repository repository.AirQualityRepository
	logger     *slog.Logger
}

func NewService(repository repository.AirQualityRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repository: repository, logger: logger}
}

func (s *Service) Parameters(ctx context.Context) ([]types.Parameter, error) {
	return s.repository.GetParameters(ctx)
}

func (s *Service) Dataset(ctx context.Context) (types.Table, error) {
	return s.repository.GetTable(ctx)
}

// Update builds the chart and assessment for a parameter. An unrecognised
// parameter yields Known=false, a figure without points and an empty
// analysis; an error is returned only when the dataset cannot be read.
func (s *Service) Update(ctx context.Context, parameter string) (Update, error) {
	known, err := s.isKnown(ctx, parameter)
	if err != nil {
		return Update{}, err
	}
	if !known {
		s.logger.Debug("update for unknown parameter", "parameter", parameter)
		return Update{
			Parameter: parameter,
			Figure:    chart.NewLineFigure(parameter, nil),
		}, nil
	}

	series, err := s.repository.GetSeries(ctx, parameter)
	if err != nil {
		return Update{}, fmt.Errorf("load series %q: %w", parameter, err)
	}

	s.logger.Debug("update built", "parameter", parameter, "points", len(series))
	return Update{
		Parameter: parameter,
		Known:     true,
		Figure:    chart.NewLineFigure(parameter, series),
		Analysis:  Assessment(parameter),
	}, nil
}

func (s *Service) isKnown(ctx context.Context, parameter string) (bool, error) {
	params, err := s.repository.GetParameters(ctx)
	if err != nil {
		return false, fmt.Errorf("load parameters: %w", err)
	}
	for _, p := range params {
		if p.Name == parameter {
			return true, nil
		}
	}
	return false, nil
}
