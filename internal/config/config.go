package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	DBUser     string `yaml:"db_user" env-default:"root"`
	DBPassword string `yaml:"db_password" env-default:""`
	DBHost     string `yaml:"db_host" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env-default:"3306"`
	DBName     string `yaml:"db_name" env-default:"sbcut"`
	ParseTime  bool   `yaml:"parse_time" env-default:"true"`

	Cutting     Cutting     `yaml:"cutting"`
	Reservation Reservation `yaml:"reservation"`

	AdminLogin string `yaml:"admin_login"`
	AdminPass  string `yaml:"admin_pass"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:4002"`
	Timeout     time.Duration `yaml:"timeout"  env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout"  env-default:"60s"`
}

// Cutting holds every constant of the decomposition tables. The numbers came
// from the shop floor and changed between table revisions, so they live in
// configuration instead of the rule code.
type Cutting struct {
	StandardLength   float64 `yaml:"standard_length" env-default:"4820"`
	BatchSize        int     `yaml:"batch_size" env-default:"100"`
	CuttingTolerance int     `yaml:"cutting_tolerance" env-default:"0"`
	WeldAllowance    int     `yaml:"weld_allowance" env-default:"65"`
	SheetWrap        int     `yaml:"sheet_wrap" env-default:"65"`
	ButtCutOffset    int     `yaml:"butt_cut_offset" env-default:"4"`
	CrossCutOffset   int     `yaml:"cross_cut_offset" env-default:"8"`
	YCornerOffset    int     `yaml:"y_corner_offset" env-default:"96"`
	BracketExtension int     `yaml:"bracket_extension" env-default:"100"`
	RockerSetback    int     `yaml:"rocker_setback" env-default:"50"`
}

type Reservation struct {
	// Priority order: the offcut store is checked before bulk raw material.
	Warehouses []string `yaml:"warehouses" env-default:"Off-Cut - VD,Raw Material - VD"`
}

func MustConfig() *Config {
	var cfg Config
	a := "./config/local.yaml"

	if err := cleanenv.ReadConfig(a, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
