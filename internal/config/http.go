package config

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"3000"`
	Swagger bool   `env:"HTTP_SWAGGER" envDefault:"true"`
	UI      bool   `env:"HTTP_UI" envDefault:"true"`
}
