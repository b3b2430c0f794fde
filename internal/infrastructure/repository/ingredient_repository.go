package repository

import (
	"context"
	"time"

	"food-scanner/internal/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IngredientRepository 參考食材資料存取介面
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *common.Ingredient) error
	FindByNames(ctx context.Context, names []string) (map[string]common.Ingredient, error)
	List(ctx context.Context) ([]common.Ingredient, error)
}

// mongoIngredientRepository MongoDB 實作
type mongoIngredientRepository struct {
	coll *mongo.Collection
}

// NewIngredientRepository 創建食材儲存庫
func NewIngredientRepository(coll *mongo.Collection) IngredientRepository {
	return &mongoIngredientRepository{coll: coll}
}

func (r *mongoIngredientRepository) Create(ctx context.Context, ingredient *common.Ingredient) error {
	now := time.Now()
	ingredient.CreatedAt = now
	ingredient.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, ingredient)
	if mongo.IsDuplicateKeyError(err) {
		return common.ErrConflict
	}
	return err
}

// FindByNames 批次查詢正規化名稱，回傳 name → Ingredient 對照表
func (r *mongoIngredientRepository) FindByNames(ctx context.Context, names []string) (map[string]common.Ingredient, error) {
	result := make(map[string]common.Ingredient, len(names))
	if len(names) == 0 {
		return result, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"name": bson.M{"$in": names}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ingredients []common.Ingredient
	if err := cursor.All(ctx, &ingredients); err != nil {
		return nil, err
	}
	for _, ing := range ingredients {
		result[ing.Name] = ing
	}
	return result, nil
}

func (r *mongoIngredientRepository) List(ctx context.Context) ([]common.Ingredient, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ingredients := []common.Ingredient{}
	if err := cursor.All(ctx, &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}
