package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/leyanessantiago/activate-api/apps/social/internal/middleware"
	"github.com/leyanessantiago/activate-api/apps/social/internal/push"
	"github.com/leyanessantiago/activate-api/apps/social/internal/repository"
	"github.com/leyanessantiago/activate-api/apps/social/internal/router"
	v1 "github.com/leyanessantiago/activate-api/apps/social/internal/router/v1"
	"github.com/leyanessantiago/activate-api/apps/social/internal/service"
	"github.com/leyanessantiago/activate-api/apps/social/mq"
	"github.com/leyanessantiago/activate-api/config"
	"github.com/leyanessantiago/activate-api/model"
	"github.com/leyanessantiago/activate-api/pkg/async"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/kafka"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/media"
	"github.com/leyanessantiago/activate-api/pkg/mysql"
	pkgredis "github.com/leyanessantiago/activate-api/pkg/redis"
	"github.com/leyanessantiago/activate-api/pkg/util"

	"github.com/gin-gonic/gin"
)

const serviceName = "activate-social"

func main() {
	configPath := flag.String("config", "", "配置文件路径（yaml），为空时只使用默认值与环境变量")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 1. 初始化日志
	zl, err := logger.Build(cfg.Logger)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	logger.ReplaceGlobal(zl)
	defer zl.Sync()

	// 2. 初始化 MySQL
	db, err := mysql.Build(cfg.MySQL)
	if err != nil {
		logger.Fatal(ctx, "初始化MySQL失败", logger.ErrorField("error", err))
	}
	mysql.ReplaceGlobal(db)
	defer func() {
		if err := mysql.Close(); err != nil {
			logger.Error(ctx, "关闭MySQL失败", logger.ErrorField("error", err))
		}
	}()
	if err := model.AutoMigrate(db); err != nil {
		logger.Fatal(ctx, "数据表迁移失败", logger.ErrorField("error", err))
	}

	// 3. 初始化 Redis（失败时降级：未读计数为 0，限流退化为本地令牌桶）
	redisClient, err := pkgredis.Build(cfg.Redis)
	if err != nil {
		logger.Warn(ctx, "Redis 初始化失败，降级运行",
			logger.ErrorField("error", err),
		)
		redisClient = nil
	} else {
		pkgredis.ReplaceGlobal(redisClient)
		defer func() {
			if err := pkgredis.Close(); err != nil {
				logger.Error(ctx, "关闭Redis失败", logger.ErrorField("error", err))
			}
		}()
		logger.Info(ctx, "Redis 初始化成功", logger.String("addr", cfg.Redis.Addr))
	}

	// 4. 初始化 Kafka
	var publisher mq.ActivityPublisher = mq.NopPublisher{}
	var consumer *push.Consumer
	pushManager := push.NewManager()
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.ActivityTopic)
		publisher = mq.NewActivityPublisher(producer)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error(ctx, "关闭 Kafka Producer 失败", logger.ErrorField("error", err))
			}
		}()

		// 每个实例独立消费组：在线连接只在本实例上，每个实例都需要看到全部消息
		groupID := cfg.Kafka.ConsumerGroup + "-" + strconv.FormatInt(cfg.Server.NodeID, 10)
		consumer = push.NewConsumer(kafka.NewReader(cfg.Kafka, cfg.Kafka.ActivityTopic, groupID), pushManager)
		logger.Info(ctx, "Kafka 初始化成功",
			logger.Any("brokers", cfg.Kafka.Brokers),
			logger.String("topic", cfg.Kafka.ActivityTopic),
			logger.String("group_id", groupID),
		)
	} else {
		logger.Warn(ctx, "Kafka 未启用，动态只落库不推送")
	}

	// 5. 协程池、ID 生成、JWT
	if err := async.Init(cfg.Async); err != nil {
		logger.Fatal(ctx, "初始化协程池失败", logger.ErrorField("error", err))
	}
	async.SetContextPropagator(ctxmeta.Propagate)
	defer func() {
		if err := async.Release(); err != nil {
			logger.Warn(ctx, "协程池释放超时", logger.ErrorField("error", err))
		}
	}()
	if err := util.InitSnowflake(cfg.Server.NodeID); err != nil {
		logger.Fatal(ctx, "初始化雪花算法失败", logger.ErrorField("error", err))
	}
	util.InitJWT(cfg.JWT)

	urls, err := media.NewURLBuilder(cfg.Media)
	if err != nil {
		logger.Fatal(ctx, "初始化对象存储地址解析失败", logger.ErrorField("error", err))
	}

	// 6. 组装依赖 - Repository 层
	userRepo := repository.NewUserRepository(db)
	relationshipRepo := repository.NewRelationshipRepository(db)
	followerRepo := repository.NewFollowerRepository(db)
	eventRepo := repository.NewEventRepository(db)
	interestRepo := repository.NewInterestRepository(db)
	activityRepo := repository.NewActivityRepository(db, redisClient)

	// 7. 组装依赖 - Service 层
	activityService := service.NewActivityService(activityRepo, userRepo, eventRepo, relationshipRepo, followerRepo, publisher)
	relationService := service.NewRelationService(relationshipRepo, followerRepo, userRepo, activityService)
	followService := service.NewFollowService(followerRepo, userRepo, activityService)
	profileService := service.NewProfileService(userRepo, relationshipRepo, followerRepo)
	feedService := service.NewFeedService(eventRepo, userRepo, relationshipRepo, followerRepo, interestRepo, urls, cfg.Feed)
	attendanceService := service.NewAttendanceService(eventRepo)

	// 8. 路由
	gin.SetMode(cfg.Server.Mode)
	opts := router.Options{
		ServiceName:    serviceName,
		RequestTimeout: cfg.Server.RequestTimeout,
	}
	if cfg.RateLimit.Enabled {
		opts.IPLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.IPRate, cfg.RateLimit.IPBurst)
		opts.UserLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.UserRate, cfg.RateLimit.UserBurst)
		opts.BlacklistKey = cfg.RateLimit.BlacklistKey
	}
	r := router.InitRouter(router.Handlers{
		Friend:    v1.NewFriendHandler(relationService, urls),
		Publisher: v1.NewPublisherHandler(followService, profileService, feedService, urls),
		Profile:   v1.NewProfileHandler(profileService, urls),
		Feed:      v1.NewFeedHandler(feedService, attendanceService),
		Activity:  v1.NewActivityHandler(activityService, urls),
		Push:      push.NewHandler(pushManager),
	}, opts)

	// 9. 推送消费者
	consumerDone := make(chan struct{})
	if consumer != nil {
		go func() {
			defer close(consumerDone)
			consumer.Run(ctx)
		}()
	} else {
		close(consumerDone)
	}

	// 10. 启动 HTTP 服务
	srv := &http.Server{
		Addr:           cfg.Server.Addr,
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
	go func() {
		logger.Info(ctx, "服务启动中", logger.String("address", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "服务启动失败", logger.ErrorField("error", err))
			os.Exit(1)
		}
	}()

	// 11. 优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info(ctx, "收到关闭信号，开始优雅停机",
		logger.String("signal", sig.String()),
	)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// 先断开长连接，Shutdown 不会等待已 hijack 的 websocket
	pushManager.Shutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "服务器强制关闭", logger.ErrorField("error", err))
	}

	cancel()
	<-consumerDone
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error(ctx, "关闭推送消费者失败", logger.ErrorField("error", err))
		}
	}

	logger.Info(ctx, "服务已优雅退出")
}
