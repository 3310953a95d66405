package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sodium-2000/super-xo-backend/internal/entity"
)

// matchTTL bounds how long archived summaries are kept around.
const matchTTL = 30 * 24 * time.Hour

type MatchRepository interface {
	Save(ctx context.Context, record *entity.MatchRecord) error
}

type dbMatch struct {
	client *redis.Client
}

func NewMatchRepository(client *redis.Client) MatchRepository {
	return &dbMatch{
		client: client,
	}
}

// Save writes one finished-game summary. Write-only sink: nothing in the
// live session path ever reads these keys back.
func (that *dbMatch) Save(ctx context.Context, record *entity.MatchRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal match record: %w", err)
	}

	matchKey := fmt.Sprintf("match:%s:%d", record.RoomID, record.EndedAt.UnixNano())

	if err = that.client.Set(ctx, matchKey, recordJSON, matchTTL).Err(); err != nil {
		return fmt.Errorf("failed to set match record: %w", err)
	}

	return nil
}
