package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/painel-rebate/internal/models"
)

var ErrDuplicateEntry = errors.New("outlet entry already exists")

// EntryID identifica a célula loja+mês+tipo (um doc por combinação).
func EntryID(outlet, month string, kind models.EntryKind) string {
	return strings.ToLower(fmt.Sprintf("%s|%s|%s", outlet, month, kind))
}

type PerformanceRepository struct {
	coll *mongo.Collection
}

func NewPerformanceRepository(db *mongo.Database) *PerformanceRepository {
	return &PerformanceRepository{coll: db.Collection("outlet_entries")}
}

func (r *PerformanceRepository) Create(ctx context.Context, e *models.OutletEntry) (string, error) {
	if e.ID == "" {
		e.ID = EntryID(e.Outlet, e.Month, e.Kind)
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	res, err := r.coll.InsertOne(ctx, e)
	if err != nil {
		if isDuplicate(err) {
			return "", ErrDuplicateEntry
		}
		return "", err
	}
	id, _ := res.InsertedID.(string)
	return id, nil
}

// GetAll devolve o snapshot inteiro na ordem das linhas da planilha (seq).
// A ordem importa: o cálculo meta x realizado preserva a sequência das metas.
func (r *PerformanceRepository) GetAll(ctx context.Context) ([]models.OutletEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.OutletEntry{}
	for cur.Next(ctx) {
		var e models.OutletEntry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, cur.Err()
}

func (r *PerformanceRepository) ReplaceAll(ctx context.Context, entries []models.OutletEntry) (int, error) {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(entries))
	for i := range entries {
		e := entries[i]
		if e.ID == "" {
			e.ID = EntryID(e.Outlet, e.Month, e.Kind)
		}
		e.Seq = i
		e.CreatedAt = now
		e.UpdatedAt = now
		docs = append(docs, e)
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}
