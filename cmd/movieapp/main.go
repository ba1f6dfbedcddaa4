package main

import (
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	kgrpc "github.com/go-kratos/kratos/v2/transport/grpc"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "go.uber.org/automaxprocs"

	"github.com/cinelog/movieapp/internal/conf"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name = "movieapp"
	// Version is the version of the compiled software.
	Version string
	// flagconf is the config flag.
	flagconf string

	id, _ = os.Hostname()
)

// envPrefix scopes the environment variables visible to config
// placeholders: MOVIEAPP_MONGO_URI resolves ${MONGO_URI}.
const envPrefix = "MOVIEAPP_"

func newApp(logger log.Logger, hs *khttp.Server, gs *kgrpc.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(
			hs,
			gs,
		),
	)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           Name,
		Short:         "Personal movie catalog API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(flagconf)
		},
	}
	root.PersistentFlags().StringVarP(&flagconf, "conf", "c", "../../configs", "config path, eg: -conf config.yaml")
	root.AddCommand(newHashPasswordCmd())
	return root
}

func serve(confPath string) error {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	c := config.New(
		config.WithSource(
			env.NewSource(envPrefix),
			file.NewSource(confPath),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		return err
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		return err
	}

	app, cleanup, err := wireApp(bc.Server, bc.Data, bc.Auth, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	// start and wait for stop signal
	return app.Run()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
