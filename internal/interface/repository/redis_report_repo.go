package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"flighthours-service/internal/domain/entity"
	"flighthours-service/internal/domain/repository"

	goredis "github.com/redis/go-redis/v9"
)

// RedisReportRepository caches each crew member's reports as one JSON value
// and announces every save on a pub/sub channel.
//
// Keys:
//
//	<prefix>:crew:<id>  output wire format holding a single specialist
//	<prefix>:crew       set of every cached crew id
type RedisReportRepository struct {
	rdb     *goredis.Client
	prefix  string
	channel string
	locale  string
}

// NewRedisReportRepository creates a new Redis report repository
func NewRedisReportRepository(rdb *goredis.Client, prefix, channel, locale string) repository.MonthReportRepository {
	return &RedisReportRepository{
		rdb:     rdb,
		prefix:  prefix,
		channel: channel,
		locale:  locale,
	}
}

// Name identifies the sink
func (r *RedisReportRepository) Name() string {
	return "redis"
}

func (r *RedisReportRepository) crewKey(id int64) string {
	return r.prefix + ":crew:" + strconv.FormatInt(id, 10)
}

func (r *RedisReportRepository) indexKey() string {
	return r.prefix + ":crew"
}

// saveRetries bounds how often Save retries after a concurrent save
// changed the crew-id set between its read and its commit
const saveRetries = 5

// Save replaces the cached reports with output. Crew members cached by a
// previous save but absent from output are removed. The crew-id set is
// watched, so concurrent saves never leave keys outside the set.
func (r *RedisReportRepository) Save(ctx context.Context, output *entity.Output) error {
	values := make(map[int64][]byte, len(output.Specialists))
	current := make(map[string]struct{}, len(output.Specialists))
	for _, member := range output.Specialists {
		data, err := MarshalOutput(&entity.Output{Specialists: []entity.CrewMember{member}}, r.locale)
		if err != nil {
			return repository.NewIOError("encode", r.crewKey(member.ID), err)
		}
		values[member.ID] = data
		current[strconv.FormatInt(member.ID, 10)] = struct{}{}
	}

	replace := func(tx *goredis.Tx) error {
		previous, err := tx.SMembers(ctx, r.indexKey()).Result()
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			for _, id := range previous {
				if _, ok := current[id]; ok {
					continue
				}
				crewID, err := strconv.ParseInt(id, 10, 64)
				if err != nil {
					continue
				}
				pipe.Del(ctx, r.crewKey(crewID))
			}
			pipe.Del(ctx, r.indexKey())
			for _, member := range output.Specialists {
				pipe.Set(ctx, r.crewKey(member.ID), values[member.ID], 0)
				pipe.SAdd(ctx, r.indexKey(), strconv.FormatInt(member.ID, 10))
			}
			pipe.Publish(ctx, r.channel, len(output.Specialists))
			return nil
		})
		return err
	}

	var err error
	for attempt := 0; attempt < saveRetries; attempt++ {
		err = r.rdb.Watch(ctx, replace, r.indexKey())
		if !errors.Is(err, goredis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return repository.NewIOError("save", r.prefix, err)
	}
	return nil
}

// FindByCrewID returns the cached reports of one crew member, or nil when
// nothing is cached for it.
func (r *RedisReportRepository) FindByCrewID(ctx context.Context, crewID int64) ([]entity.MonthReport, error) {
	key := r.crewKey(crewID)
	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.NewIOError("load", key, err)
	}

	output, err := UnmarshalOutput(data, r.locale)
	if err != nil {
		return nil, repository.NewIOError("decode", key, err)
	}
	member, ok := output.FindCrew(crewID)
	if !ok {
		return nil, repository.NewIOError("decode", key, fmt.Errorf("value holds no crew %d", crewID))
	}
	return member.Reports, nil
}
