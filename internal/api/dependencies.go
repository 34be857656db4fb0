package api

import (
	"context"
	"os"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/db"
	"brigade-ops/rollcall/internal/db/repositories"
	"brigade-ops/rollcall/internal/logging"
	"brigade-ops/rollcall/internal/services"
	"brigade-ops/rollcall/internal/workers"
)

type Repositories struct {
	Members    repositories.MemberRepository
	Activities repositories.ActivityRepository
	Events     repositories.EventRepository
	CheckIns   repositories.CheckInRepository
	Audit      repositories.AuditRepository
	Keys       *repositories.KeysRepo
}

type Services struct {
	Cache    common.CacheInterface
	Queue    *common.RedisQueueService
	Catalog  *services.CatalogService
	CheckIn  *services.CheckInService
	Event    *services.EventService
	Member   *services.MemberService
	Rollover *services.RolloverService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and services. STORE_BACKEND=memory swaps
// the persistence layer for the in-process store; the service layer does not
// change.
func InitDependencies() (*Dependencies, error) {

	var repos *Repositories

	if os.Getenv("STORE_BACKEND") == "memory" {
		store := repositories.NewMemoryStore()
		repos = &Repositories{
			Members:    store.Members(),
			Activities: store.Activities(),
			Events:     store.Events(),
			CheckIns:   store.CheckIns(),
			Audit:      store.Audit(),
		}
		logging.Info("Using in-memory store backend")
	} else {
		repos = &Repositories{
			Members:    repositories.NewMemberGormRepository(db.PgDB),
			Activities: repositories.NewActivityGormRepository(db.PgDB),
			Events:     repositories.NewEventGormRepository(db.PgDB),
			CheckIns:   repositories.NewCheckInSqlxRepository(db.DB),
			Audit:      repositories.NewAuditGormRepository(db.PgDB),
			Keys:       repositories.NewApiKeysRepo(db.DB),
		}
	}

	var cacheSvc common.CacheInterface
	var queueSvc *common.RedisQueueService

	if os.Getenv("CACHE_BACKEND") == "redis" {
		client := common.NewRedisClient()
		redisCache, err := common.NewRedisCacheService(client)
		if err != nil {
			return nil, err
		}
		cacheSvc = redisCache
		queueSvc = common.NewRedisQueueService(client)
	} else {
		cacheSvc = common.NewCacheService(60, 600)
	}

	// audit entries go through Redis when it is configured, else straight to
	// the repository
	var emitter services.AuditEmitter
	if queueSvc != nil {
		emitter = workers.NewQueueAuditEmitter(queueSvc)
	}

	catalogSvc := services.NewCatalogService(repos.Activities, cacheSvc)
	checkInSvc := services.NewCheckInService(repos.Members, catalogSvc, repos.CheckIns)
	memberSvc := services.NewMemberService(repos.Members, cacheSvc)
	rolloverSvc := services.NewRolloverService(repos.Events, services.ThresholdHoursFromEnv())
	eventSvc := services.NewEventService(repos.Events, repos.Members, repos.Activities, repos.Audit, rolloverSvc, emitter)

	svcs := &Services{
		Cache:    cacheSvc,
		Queue:    queueSvc,
		Catalog:  catalogSvc,
		CheckIn:  checkInSvc,
		Event:    eventSvc,
		Member:   memberSvc,
		Rollover: rolloverSvc,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil
}

// Shutdown releases the dependencies' external connections
func (d *Dependencies) Shutdown(ctx context.Context) {
	if d.Services != nil && d.Services.Cache != nil {
		_ = d.Services.Cache.Close()
	}
}
