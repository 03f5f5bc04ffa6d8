package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -package mockrepository -destination ./mock/mockpersistent.go . PersistentProvider
type PersistentProvider interface {
	FindApplicationByName(ctx context.Context, name string) (Application, error)
	CreateDelivery(ctx context.Context, delivery *Delivery) error
}

var _ PersistentProvider = (*Persistent)(nil)

type Persistent struct {
	conn *gorm.DB
}

type PersistentParams struct {
	fx.In

	Config PersistentConfig
}

func NewPersistent(lc fx.Lifecycle, params PersistentParams) (*Persistent, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		params.Config.Host,
		params.Config.Username,
		params.Config.Password,
		params.Config.Name,
		params.Config.Port,
		params.Config.SSLMode,
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if params.Config.AutoMigrate {
		if err := conn.AutoMigrate(&Application{}, &Delivery{}); err != nil {
			return nil, fmt.Errorf("migrate schema: %w", err)
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, _ := conn.DB()
			return sqlDB.Close()
		},
	})

	return &Persistent{
		conn: conn,
	}, nil
}

type PersistentConfig struct {
	Host        string `envconfig:"DB_HOST" required:"true"`
	Port        string `envconfig:"DB_PORT" required:"true"`
	Name        string `envconfig:"DB_NAME" required:"true"`
	Username    string `envconfig:"DB_USERNAME" required:"true"`
	Password    string `envconfig:"DB_PASSWORD" required:"true"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

func NewPersistentConfig() PersistentConfig {
	var cfg PersistentConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

func (p *Persistent) FindApplicationByName(ctx context.Context, name string) (Application, error) {
	app, err := gorm.
		G[Application](p.conn).
		Where("name = ?", name).
		First(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Application{}, ErrApplicationNotFound
	}
	if err != nil {
		return Application{}, err
	}

	return app, nil
}

func (p *Persistent) CreateDelivery(ctx context.Context, delivery *Delivery) error {
	return gorm.G[Delivery](p.conn).Create(ctx, delivery)
}
