package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"medipred/internal/model"
	"medipred/pkg/pagination"
)

// DefaultHistoryTTL bounds how long a cached listing may lag the store
const DefaultHistoryTTL = 10 * time.Minute

// HistoryPage is one cached page of a user's prediction listing
type HistoryPage struct {
	Records []*model.PredictionRecord `json:"records"`
	Total   int64                     `json:"total"`
}

// HistoryCache is a read-through cache of a user's prediction history.
// Misses return nil, nil.
//
// Writers pass the generation they read before querying the store; Set* is
// a no-op once Invalidate has moved the owner to a newer generation.
type HistoryCache interface {
	Generation(ctx context.Context, ownerID string) (int64, error)
	GetPage(ctx context.Context, ownerID string, page pagination.Params) (*HistoryPage, error)
	SetPage(ctx context.Context, ownerID string, gen int64, page pagination.Params, data *HistoryPage) error
	GetSummary(ctx context.Context, ownerID string) ([]model.ConditionSummary, error)
	SetSummary(ctx context.Context, ownerID string, gen int64, summary []model.ConditionSummary) error
	Invalidate(ctx context.Context, ownerID string) error
}

type historyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHistoryCache creates a Redis history cache. All entries for one owner
// live in a single hash next to a generation counter.
func NewHistoryCache(client *redis.Client, ttl time.Duration) HistoryCache {
	if ttl <= 0 {
		ttl = DefaultHistoryTTL
	}
	return &historyCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *historyCache) key(ownerID string) string {
	return fmt.Sprintf("history:%s", ownerID)
}

// genKey has no TTL so a generation is never reused
func (c *historyCache) genKey(ownerID string) string {
	return fmt.Sprintf("history:%s:gen", ownerID)
}

func pageField(page pagination.Params) string {
	return fmt.Sprintf("page:%d:%d", page.Limit, page.Offset)
}

const summaryField = "summary"

func (c *historyCache) Generation(ctx context.Context, ownerID string) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey(ownerID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (c *historyCache) GetPage(ctx context.Context, ownerID string, page pagination.Params) (*HistoryPage, error) {
	var data HistoryPage
	ok, err := c.get(ctx, ownerID, pageField(page), &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

func (c *historyCache) SetPage(ctx context.Context, ownerID string, gen int64, page pagination.Params, data *HistoryPage) error {
	return c.set(ctx, ownerID, gen, pageField(page), data)
}

func (c *historyCache) GetSummary(ctx context.Context, ownerID string) ([]model.ConditionSummary, error) {
	var summary []model.ConditionSummary
	ok, err := c.get(ctx, ownerID, summaryField, &summary)
	if err != nil || !ok {
		return nil, err
	}
	if summary == nil {
		summary = []model.ConditionSummary{}
	}
	return summary, nil
}

func (c *historyCache) SetSummary(ctx context.Context, ownerID string, gen int64, summary []model.ConditionSummary) error {
	return c.set(ctx, ownerID, gen, summaryField, summary)
}

// Invalidate drops the owner's entries and bumps the generation so in-flight
// reads cannot repopulate them.
func (c *historyCache) Invalidate(ctx context.Context, ownerID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey(ownerID))
		pipe.Del(ctx, c.key(ownerID))
		return nil
	})
	return err
}

func (c *historyCache) get(ctx context.Context, ownerID, field string, out interface{}) (bool, error) {
	data, err := c.client.HGet(ctx, c.key(ownerID), field).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, err
	}
	return true, nil
}

// set writes field only while the owner is still at generation gen
func (c *historyCache) set(ctx context.Context, ownerID string, gen int64, field string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	key, genKey := c.key(ownerID), c.genKey(ownerID)

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if cur != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, field, data)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, genKey)

	if errors.Is(err, errStaleGeneration) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

var errStaleGeneration = errors.New("history generation changed")

type noopHistoryCache struct{}

// NewNoopHistoryCache returns a cache that never holds anything, used when
// Redis is not configured.
func NewNoopHistoryCache() HistoryCache {
	return noopHistoryCache{}
}

func (noopHistoryCache) Generation(context.Context, string) (int64, error) {
	return 0, nil
}

func (noopHistoryCache) GetPage(context.Context, string, pagination.Params) (*HistoryPage, error) {
	return nil, nil
}

func (noopHistoryCache) SetPage(context.Context, string, int64, pagination.Params, *HistoryPage) error {
	return nil
}

func (noopHistoryCache) GetSummary(context.Context, string) ([]model.ConditionSummary, error) {
	return nil, nil
}

func (noopHistoryCache) SetSummary(context.Context, string, int64, []model.ConditionSummary) error {
	return nil
}

func (noopHistoryCache) Invalidate(context.Context, string) error {
	return nil
}
