package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"goban/internal/domain/game"
	errs "goban/internal/errors"
)

const (
	gamesCollection = "games"
	sgfKeyPrefix    = "sgf:"
	sgfTTL          = 24 * time.Hour
)

// sgfCache is the part of the Redis client the repository uses.
type sgfCache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// recordCollection is the part of the Mongo games collection the repository uses.
type recordCollection interface {
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

type GameRepository struct {
	log   *zap.SugaredLogger
	redis sgfCache
	games recordCollection
}

func NewGameRepository(log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	repo := &GameRepository{log: log}
	if redis != nil {
		repo.redis = redis
	}
	if mongo != nil {
		repo.games = mongo.Collection(gamesCollection)
	}
	return repo
}

func (g *GameRepository) GenerateGameKey() string {
	return uuid.New().String()
}

func (g *GameRepository) SaveSGFToRedis(ctx context.Context, key string, sgfText string) error {
	return g.redis.Set(ctx, sgfKeyPrefix+key, sgfText, sgfTTL).Err()
}

func (g *GameRepository) LoadSGFFromRedis(ctx context.Context, key string) (string, error) {
	text, err := g.redis.Get(ctx, sgfKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", errs.ErrGameNotFound, key)
	}
	return text, err
}

// PutRecordToMongo inserts the record, replacing an earlier archive of the same game.
func (g *GameRepository) PutRecordToMongo(ctx context.Context, record game.Record) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"game_key": record.GameKey}
	opts := options.Replace().SetUpsert(true)

	if _, err := g.games.ReplaceOne(ctx, filter, record, opts); err != nil {
		g.log.Errorf("failed to archive game %s: %v", record.GameKey, err)
		return err
	}

	g.log.Infof("game archived successfully with key: %s", record.GameKey)
	return nil
}

func (g *GameRepository) GetRecordByKey(ctx context.Context, key string) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"game_key": key}

	var record game.Record
	err := g.games.FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Record{}, fmt.Errorf("%w: %s", errs.ErrGameNotFound, key)
	} else if err != nil {
		g.log.Error(err)
		return game.Record{}, err
	}
	return record, nil
}
