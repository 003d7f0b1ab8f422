package handlers

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/painel-rebate/internal/models"
)

type supplierRepoMock struct {
	GetAllFn     func(ctx context.Context, limit, skip int64) ([]models.Supplier, error)
	GetByIDFn    func(ctx context.Context, id string) (*models.Supplier, error)
	CreateFn     func(ctx context.Context, s *models.Supplier) (string, error)
	ReplaceAllFn func(ctx context.Context, suppliers []models.Supplier) (int, error)
	DeleteFn     func(ctx context.Context, id string) error
}

func (m *supplierRepoMock) GetAll(ctx context.Context, limit, skip int64) ([]models.Supplier, error) {
	if m.GetAllFn == nil {
		return nil, errors.New("GetAllFn not set")
	}
	return m.GetAllFn(ctx, limit, skip)
}
func (m *supplierRepoMock) GetByID(ctx context.Context, id string) (*models.Supplier, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *supplierRepoMock) Create(ctx context.Context, s *models.Supplier) (string, error) {
	if m.CreateFn == nil {
		return "", errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, s)
}
func (m *supplierRepoMock) ReplaceAll(ctx context.Context, suppliers []models.Supplier) (int, error) {
	if m.ReplaceAllFn == nil {
		return 0, errors.New("ReplaceAllFn not set")
	}
	return m.ReplaceAllFn(ctx, suppliers)
}
func (m *supplierRepoMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type perfRepoMock struct {
	GetAllFn     func(ctx context.Context) ([]models.OutletEntry, error)
	ReplaceAllFn func(ctx context.Context, entries []models.OutletEntry) (int, error)
}

func (m *perfRepoMock) GetAll(ctx context.Context) ([]models.OutletEntry, error) {
	if m.GetAllFn == nil {
		return nil, errors.New("GetAllFn not set")
	}
	return m.GetAllFn(ctx)
}
func (m *perfRepoMock) ReplaceAll(ctx context.Context, entries []models.OutletEntry) (int, error) {
	if m.ReplaceAllFn == nil {
		return 0, errors.New("ReplaceAllFn not set")
	}
	return m.ReplaceAllFn(ctx, entries)
}

type pubMock struct {
	PublishFn func(ctx context.Context, body string, headers amqp.Table) error
	CloseFn   func() error
}

func (p *pubMock) Publish(ctx context.Context, body string, headers amqp.Table) error {
	if p.PublishFn == nil {
		return nil
	}
	return p.PublishFn(ctx, body, headers)
}
func (p *pubMock) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}
