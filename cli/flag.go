package cli

import (
	"flag"
	"fmt"
	"os"

	"give-hub/common/config"
	"give-hub/common/utils"

	"github.com/spf13/viper"
)

var (
	port         = flag.Int("port", 0, "the listening port")
	printVersion = flag.Bool("version", false, "print version and exit")
	printHelp    = flag.Bool("help", false, "print help and exit")
	logDir       = flag.String("log-dir", "", "specify the log directory")
	Config       = flag.String("config", "config.yaml", "specify the config.yaml path")
)

func InitCli() {
	flag.Parse()

	if *printVersion {
		fmt.Println(config.Version)
		os.Exit(0)
	}

	if *printHelp {
		help()
		os.Exit(0)
	}

	if *port != 0 {
		viper.Set("port", *port)
	}

	if *logDir != "" {
		viper.Set("log_dir", *logDir)
	}

	if !utils.IsFileExist(*Config) {
		return
	}

	viper.SetConfigFile(*Config)
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}
}

func help() {
	fmt.Println("Give Hub " + config.Version + " - donation payment gateway.")
	fmt.Println("Usage: give-hub [--port <port>] [--log-dir <log directory>] [--config <config.yaml path>] [--version] [--help]")
}
