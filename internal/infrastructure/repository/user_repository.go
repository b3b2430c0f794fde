package repository

import (
	"context"
	"errors"
	"time"

	"food-scanner/internal/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository 使用者資料存取介面
type UserRepository interface {
	Create(ctx context.Context, user *common.User) error
	FindByEmail(ctx context.Context, email string) (*common.User, error)
	FindByUserID(ctx context.Context, userID string) (*common.User, error)
	UpdateProfile(ctx context.Context, user *common.User) error
}

// mongoUserRepository MongoDB 實作
type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository 創建使用者儲存庫
func NewUserRepository(coll *mongo.Collection) UserRepository {
	return &mongoUserRepository{coll: coll}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *common.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return common.ErrUserExists
	}
	return err
}

// FindByEmail 以 email 查詢使用者，查無資料時回傳 (nil, nil)
func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*common.User, error) {
	var user common.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUserID 以 userId 查詢使用者，查無資料時回傳 (nil, nil)
func (r *mongoUserRepository) FindByUserID(ctx context.Context, userID string) (*common.User, error) {
	var user common.User
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile 更新偏好設定欄位
func (r *mongoUserRepository) UpdateProfile(ctx context.Context, user *common.User) error {
	user.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": user.UserID},
		bson.M{"$set": bson.M{
			"diet":             user.Diet,
			"allergies":        user.Allergies,
			"avoid":            user.Avoid,
			"healthIssues":     user.HealthIssues,
			"likes":            user.Likes,
			"age":              user.Age,
			"gender":           user.Gender,
			"profileCompleted": user.ProfileCompleted,
			"updatedAt":        user.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return common.ErrUserNotFound
	}
	return nil
}
