package deps

import (
	"accountd/internal/config"
	dl "accountd/internal/core/domain/logging"
	duow "accountd/internal/core/domain/unit_of_work"
	"accountd/internal/core/domain/user"
	uow "accountd/internal/db/unit_of_work"
	dbuser "accountd/internal/db/user"
	"accountd/internal/implementations/email"
	"accountd/internal/implementations/logging"
	passwordhasher "accountd/internal/implementations/password_hasher"
	resettokengenerator "accountd/internal/implementations/reset_token_generator"
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB *pgxpool.Pool

	Now func() time.Time

	UnitOfWork     duow.UnitOfWork
	UserRepository user.UserRepository

	PasswordHasher      user.PasswordHasher
	ResetTokenGenerator user.ResetTokenGenerator
	ResetTokenSender    user.ResetTokenSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.ResetTokenGenerator = resettokengenerator.NewGenerator()
	deps.initResetTokenSender()

	return deps, func() {
		closeFuncs := []func(){
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initResetTokenSender() {
	baseURL, err := url.Parse(deps.Config.PasswordResetBaseURL)
	if err != nil {
		panic(err)
	}

	switch deps.Config.EmailBackend {
	case config.EmailBackendSes:
		deps.ResetTokenSender = email.NewSesSender(
			deps.loadAwsConfig(),
			deps.Config.EmailSenderAddress,
			*baseURL,
		)
	default:
		deps.ResetTokenSender = email.NewSmtpSender(
			deps.Config.SmtpHost,
			deps.Config.SmtpPort,
			deps.Config.EmailSenderAddress,
			deps.Config.EmailSenderPassword,
			*baseURL,
		)
	}
}

func (deps *Deps) loadAwsConfig() aws.Config {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	return cfg
}
