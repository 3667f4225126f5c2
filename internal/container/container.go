package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jioni/config"
	"github.com/oksasatya/jioni/internal/domain/repository"
	"github.com/oksasatya/jioni/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	esClient    *elasticsearch.Client

	jwtManager *helpers.JWTManager
	hasher     helpers.PasswordHasher

	userRepo repository.UserRepository
	ledger   repository.TicketLedger
)

func SetConfig(c *config.Config)    { cfg = c }
func GetConfig() *config.Config     { return cfg }
func SetLogger(l *logrus.Logger)    { logger = l }
func GetLogger() *logrus.Logger     { return logger }
func SetPGPool(p *pgxpool.Pool)     { pgPool = p }
func GetPGPool() *pgxpool.Pool      { return pgPool }
func SetRedis(r *redis.Client)      { redisClient = r }
func GetRedis() *redis.Client       { return redisClient }
func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }

func SetJWT(m *helpers.JWTManager)       { jwtManager = m }
func GetJWT() *helpers.JWTManager        { return jwtManager }
func SetHasher(h helpers.PasswordHasher) { hasher = h }
func GetHasher() helpers.PasswordHasher  { return hasher }

func SetUserRepository(r repository.UserRepository) { userRepo = r }
func GetUserRepository() repository.UserRepository  { return userRepo }
func SetTicketLedger(l repository.TicketLedger)     { ledger = l }
func GetTicketLedger() repository.TicketLedger      { return ledger }
