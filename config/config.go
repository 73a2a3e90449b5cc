package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Reward    RewardConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration Duration
}

type RedisConfigs struct {
	Addr string
}

// RewardConfigs carries every tunable of the reward engine. Defaults match
// the production values.
type RewardConfigs struct {
	DailyCreditCap   float64
	MaxClaimsPerHour int

	WelcomeBonus          float64
	SignupReferralBonus   float64
	DepositReferralBonus  float64
	DepositCommissionRate float64

	StreakBonusDay     int
	StreakBonusCredits float64

	ReferralCodeLength uint

	SpinPrizes []SpinPrizeConfigs
}

type SpinPrizeConfigs struct {
	Credits     float64
	Probability float64
}

// Duration wraps time.Duration so it can be written as "15m" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func Default() Configs {
	return Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "battlezone",
			User:     "root",
		},
		ApiServer: ServerConfigs{Host: "0.0.0.0", Port: "8080"},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: Duration{24 * time.Hour},
			},
		},
		Redis: RedisConfigs{Addr: "localhost:6379"},
		Reward: RewardConfigs{
			DailyCreditCap:        200,
			MaxClaimsPerHour:      10,
			WelcomeBonus:          10,
			SignupReferralBonus:   50,
			DepositReferralBonus:  100,
			DepositCommissionRate: 0.05,
			StreakBonusDay:        7,
			StreakBonusCredits:    100,
			ReferralCodeLength:    8,
			SpinPrizes: []SpinPrizeConfigs{
				{Credits: 5, Probability: 0.35},
				{Credits: 10, Probability: 0.25},
				{Credits: 15, Probability: 0.15},
				{Credits: 25, Probability: 0.12},
				{Credits: 50, Probability: 0.08},
				{Credits: 75, Probability: 0.04},
				{Credits: 100, Probability: 0.01},
			},
		},
	}
}

// Load reads a TOML file over the defaults. Secrets can be kept out of the
// file and provided by environment instead.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if secret := os.Getenv("TOKEN_SECRET"); secret != "" {
		cfg.Auth.TokenSecret = secret
	}

	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}

	return cfg, nil
}
