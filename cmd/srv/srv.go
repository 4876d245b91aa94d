package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/urfave/cli/v2"
	"github.com/vitalcycle/backend/config"
	"github.com/vitalcycle/backend/internal/common"
	"github.com/vitalcycle/backend/internal/domain"
	"github.com/vitalcycle/backend/internal/domain/lifecycle"
	"github.com/vitalcycle/backend/internal/domain/medal"
	"github.com/vitalcycle/backend/internal/domain/progression"
	"github.com/vitalcycle/backend/internal/domain/scoring"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/dateutil"
	"github.com/vitalcycle/backend/pkg/kafka"
	"github.com/vitalcycle/backend/pkg/lock"
	"github.com/vitalcycle/backend/pkg/logger"
	"github.com/vitalcycle/backend/pkg/pubsub"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"github.com/vitalcycle/backend/pkg/xredis"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	clock dateutil.Clock
	loc   *time.Location

	locker    lock.Locker
	publisher pubsub.Publisher
	closers   []func() error

	cycleRepo       repository.CycleRepository
	habitRepo       repository.HabitCompletionRepository
	dailyPointsRepo repository.DailyPointsRepository
	userLevelRepo   repository.UserLevelRepository
	medalRepo       repository.MedalRepository
	awardedRepo     repository.AwardedMedalRepository

	cycleManager *lifecycle.Manager
	medalFactory *medal.Factory

	cycleDomain        domain.CycleDomain
	gamificationDomain domain.GamificationDomain
	medalDomain        domain.MedalDomain
}

// loadBase runs before every command: configs, logger, database and snowflake
// node are needed by all of them.
func (s *srv) loadBase(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	if level := cctx.String("log-level"); level != "" {
		cfg.LogLevel = level
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)

	if err := s.loadLogger(); err != nil {
		return err
	}

	if err := s.loadDatabase(); err != nil {
		return err
	}

	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		return err
	}
	s.ctx = xcontext.WithSnowFlake(s.ctx, node)

	s.clock = dateutil.SystemClock()
	s.loc, err = cfg.Gamification.Location()
	return err
}

func (s *srv) loadLogger() error {
	level, err := logger.ParseLevel(xcontext.Configs(s.ctx).LogLevel)
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
	return nil
}

func (s *srv) loadDatabase() error {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})

	case "sqlite":
		dialector = sqlite.Open(cfg.Path)

	default:
		return fmt.Errorf("invalid database driver %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return err
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows only one writer at a time.
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	s.closers = append(s.closers, func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})

	return nil
}

// loadLocker uses redis locks when an address is configured, so that several
// processes can serve the same users.
func (s *srv) loadLocker() error {
	cfg := xcontext.Configs(s.ctx).Redis
	if cfg.Addr == "" {
		s.locker = lock.NewLocalLocker()
		return nil
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		return err
	}

	s.closers = append(s.closers, client.Close)
	s.locker = lock.NewRedisLocker(client, common.RedisLockPrefix, cfg.LockTTL())
	return nil
}

func (s *srv) loadPublisher() error {
	cfg := xcontext.Configs(s.ctx).Kafka
	if cfg.Addr == "" {
		s.publisher = pubsub.NewLogPublisher()
		return nil
	}

	publisher, err := kafka.NewPublisher(cfg.ClientID, strings.Split(cfg.Addr, ","))
	if err != nil {
		return err
	}

	s.publisher = publisher
	s.closers = append(s.closers, func() error { return publisher.Stop(s.ctx) })
	return nil
}

func (s *srv) loadRepos() {
	s.cycleRepo = repository.NewCycleRepository()
	s.habitRepo = repository.NewHabitCompletionRepository()
	s.dailyPointsRepo = repository.NewDailyPointsRepository()
	s.userLevelRepo = repository.NewUserLevelRepository()
	s.medalRepo = repository.NewMedalRepository()
	s.awardedRepo = repository.NewAwardedMedalRepository()
}

func (s *srv) loadDomains() error {
	if err := s.loadLocker(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}

	s.loadRepos()

	thresholds, err := progression.NewThresholds(xcontext.Configs(s.ctx).Gamification.LevelThresholds)
	if err != nil {
		return err
	}

	s.cycleManager = lifecycle.NewManager(s.cycleRepo, s.clock, s.loc)
	streaks := scoring.NewStreakCalculator(s.habitRepo)
	calculator := scoring.NewCalculator(s.habitRepo, s.dailyPointsRepo, streaks)
	tracker := progression.NewTracker(s.cycleManager, s.dailyPointsRepo, s.userLevelRepo, streaks, thresholds)
	s.medalFactory = medal.NewFactory(streaks, s.loc)
	medalManager := medal.NewManager(s.medalRepo, s.awardedRepo, s.medalFactory)

	s.cycleDomain = domain.NewCycleDomain(s.cycleManager, s.locker, s.publisher)
	s.gamificationDomain = domain.NewGamificationDomain(
		s.habitRepo, s.dailyPointsRepo, s.awardedRepo,
		s.cycleManager, calculator, tracker, medalManager,
		s.locker, s.publisher,
	)
	s.medalDomain = domain.NewMedalDomain(s.medalRepo, s.medalFactory)

	return nil
}

func (s *srv) close(*cli.Context) error {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot close resource: %v", err)
		}
	}

	return nil
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, string(b))
	return err
}
