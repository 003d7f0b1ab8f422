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

var ErrDuplicateSupplier = errors.New("supplier already exists")

// SupplierID normaliza o nome para servir de _id (snapshot tem um doc por
// fornecedor).
func SupplierID(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

type SupplierRepository struct {
	coll *mongo.Collection
}

func NewSupplierRepository(db *mongo.Database) *SupplierRepository {
	return &SupplierRepository{coll: db.Collection("suppliers")}
}

func (r *SupplierRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_name"),
	}
	_, err := r.coll.Indexes().CreateOne(ctx, model)
	if err == nil {
		return nil
	}
	// índice já existe com opções diferentes: dropa e recria
	if ce, ok := err.(mongo.CommandError); ok && ce.Code == 85 { // IndexOptionsConflict
		if _, dropErr := r.coll.Indexes().DropOne(ctx, "uniq_name"); dropErr != nil {
			return fmt.Errorf("drop index uniq_name: %w", dropErr)
		}
		_, createErr := r.coll.Indexes().CreateOne(ctx, model)
		return createErr
	}
	return err
}

func (r *SupplierRepository) Create(ctx context.Context, s *models.Supplier) (string, error) {
	if s.ID == "" {
		s.ID = SupplierID(s.Name)
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		if isDuplicate(err) {
			return "", ErrDuplicateSupplier
		}
		return "", err
	}
	id, _ := res.InsertedID.(string)
	return id, nil
}

func (r *SupplierRepository) GetByID(ctx context.Context, id string) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepository) GetAll(ctx context.Context, limit, skip int64) ([]models.Supplier, error) {
	opts := options.Find().SetLimit(limit).SetSkip(skip).SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Supplier{}
	for cur.Next(ctx) {
		var s models.Supplier
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, cur.Err()
}

func (r *SupplierRepository) Replace(ctx context.Context, id string, s *models.Supplier) error {
	s.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, s)
	if isDuplicate(err) {
		return ErrDuplicateSupplier
	}
	return err
}

// ReplaceAll troca o snapshot inteiro pelo conteúdo recém-importado da
// planilha. Sem transação: o dataset é pequeno e o painel tolera uma
// leitura no meio da troca.
func (r *SupplierRepository) ReplaceAll(ctx context.Context, suppliers []models.Supplier) (int, error) {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, err
	}
	if len(suppliers) == 0 {
		return 0, nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(suppliers))
	for i := range suppliers {
		s := suppliers[i]
		if s.ID == "" {
			s.ID = SupplierID(s.Name)
		}
		s.CreatedAt = now
		s.UpdatedAt = now
		docs = append(docs, s)
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func isDuplicate(err error) bool {
	if we, ok := err.(mongo.WriteException); ok {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return false
}
