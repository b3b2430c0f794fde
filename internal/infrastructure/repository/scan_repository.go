package repository

import (
	"context"
	"errors"
	"time"

	"food-scanner/internal/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScanRepository 掃描紀錄資料存取介面
type ScanRepository interface {
	Insert(ctx context.Context, scan *common.Scan) error
	FindByContentHash(ctx context.Context, contentHash string) (*common.Scan, error)
	FindByUserAndIngredients(ctx context.Context, userID string, ingredients []string) (*common.Scan, error)
	FindByUserPaged(ctx context.Context, userID string, page, limit int) ([]common.Scan, int64, error)
	FindSaved(ctx context.Context, userID string) ([]common.Scan, error)
	FindByScanID(ctx context.Context, userID, scanID string) (*common.Scan, error)
	SetSaved(ctx context.Context, userID, scanID string, saved bool) error
	Delete(ctx context.Context, userID, scanID string) error
}

// mongoScanRepository MongoDB 實作
type mongoScanRepository struct {
	coll *mongo.Collection
}

// NewScanRepository 創建掃描儲存庫
func NewScanRepository(coll *mongo.Collection) ScanRepository {
	return &mongoScanRepository{coll: coll}
}

func (r *mongoScanRepository) Insert(ctx context.Context, scan *common.Scan) error {
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, scan)
	return err
}

// FindByContentHash 以內容雜湊查詢任一使用者的最新掃描，查無資料時回傳 (nil, nil)
func (r *mongoScanRepository) FindByContentHash(ctx context.Context, contentHash string) (*common.Scan, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var scan common.Scan
	err := r.coll.FindOne(ctx, bson.M{"contentHash": contentHash}, opts).Decode(&scan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scan, nil
}

// FindByUserAndIngredients 查詢同一使用者、完全相同食材清單的最新掃描
func (r *mongoScanRepository) FindByUserAndIngredients(ctx context.Context, userID string, ingredients []string) (*common.Scan, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var scan common.Scan
	err := r.coll.FindOne(ctx, bson.M{"userId": userID, "ingredients": ingredients}, opts).Decode(&scan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scan, nil
}

// FindByUserPaged 依建立時間倒序分頁查詢使用者歷史，並回傳總筆數
func (r *mongoScanRepository) FindByUserPaged(ctx context.Context, userID string, page, limit int) ([]common.Scan, int64, error) {
	filter := bson.M{"userId": userID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	scans := []common.Scan{}
	if err := cursor.All(ctx, &scans); err != nil {
		return nil, 0, err
	}
	return scans, total, nil
}

// FindSaved 查詢使用者收藏的掃描，依建立時間倒序
func (r *mongoScanRepository) FindSaved(ctx context.Context, userID string) ([]common.Scan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID, "isSaved": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	scans := []common.Scan{}
	if err := cursor.All(ctx, &scans); err != nil {
		return nil, err
	}
	return scans, nil
}

// FindByScanID 查詢使用者名下的單筆掃描，查無資料時回傳 (nil, nil)
func (r *mongoScanRepository) FindByScanID(ctx context.Context, userID, scanID string) (*common.Scan, error) {
	var scan common.Scan
	err := r.coll.FindOne(ctx, bson.M{"userId": userID, "scanId": scanID}).Decode(&scan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scan, nil
}

// SetSaved 切換收藏狀態，掃描不存在或不屬於該使用者時回傳 ErrScanNotFound
func (r *mongoScanRepository) SetSaved(ctx context.Context, userID, scanID string, saved bool) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID, "scanId": scanID},
		bson.M{"$set": bson.M{"isSaved": saved}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return common.ErrScanNotFound
	}
	return nil
}

// Delete 刪除使用者名下的掃描，掃描不存在時回傳 ErrScanNotFound
func (r *mongoScanRepository) Delete(ctx context.Context, userID, scanID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID, "scanId": scanID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return common.ErrScanNotFound
	}
	return nil
}
