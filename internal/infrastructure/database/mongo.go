package database

import (
	"context"
	"fmt"

	"food-scanner/internal/infrastructure/config"
	"food-scanner/internal/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Mongo 封裝 MongoDB 連線與常用集合
type Mongo struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Users       *mongo.Collection
	Ingredients *mongo.Collection
	Scans       *mongo.Collection
}

// Connect 建立 MongoDB 連線並初始化索引
func Connect(ctx context.Context, cfg *config.MongoConfig) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// 確認連線可用
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	m := &Mongo{
		Client:      client,
		Database:    db,
		Users:       db.Collection("users"),
		Ingredients: db.Collection("ingredients"),
		Scans:       db.Collection("scans"),
	}

	if err := m.ensureIndexes(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	common.LogInfo("MongoDB 連線已建立",
		zap.String("database", cfg.Database),
	)

	return m, nil
}

// ensureIndexes 建立必要索引
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	// email 唯一索引
	if _, err := m.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	// 食材名稱唯一索引
	if _, err := m.Ingredients.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	// 掃描查詢索引：全域內容雜湊、使用者歷史
	_, err := m.Scans.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "contentHash", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

// Close 關閉 MongoDB 連線
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
