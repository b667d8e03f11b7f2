// Package application 为使用本框架的进程提供统一的启动编排：
// 解析配置文件路径、加载配置、初始化全局日志与默认传输。
// 纯库用法不需要它，命令行工具和常驻服务可以直接复用。
package application

import (
	"fmt"
	"os"
	"strings"

	zlog "github.com/lk2023060901/quickapi-go/pkg/log"
	"github.com/lk2023060901/quickapi-go/pkg/transport"
	zviper "github.com/lk2023060901/quickapi-go/pkg/util/viper"
)

// Application 为进程级运行容器，持有配置与公共依赖。
type Application struct {
	cfg       *zviper.Config
	transport transport.Client
}

// New 创建一个空的 Application。
func New() *Application {
	return &Application{}
}

// Run 为应用入口：解析命令行参数并按以下优先级加载配置文件，
// 随后初始化全局日志与默认传输：
//  1. 默认：./config.yaml
//  2. 环境变量：QUICKAPI_CONFIG_FILE_PATH
//  3. 命令行：--config <path> 或 --config=<path>
func (a *Application) Run() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := a.initLogging(); err != nil {
		return err
	}
	return a.initTransport()
}

// Config 返回已加载的配置。
func (a *Application) Config() *zviper.Config {
	return a.cfg
}

// Transport 返回按配置构造的传输实现，可直接用于端点声明。
func (a *Application) Transport() transport.Client {
	if a.transport == nil {
		return transport.Default()
	}
	return a.transport
}

// loadConfig 解析配置文件路径并通过 viper 封装加载。
func (a *Application) loadConfig() (*zviper.Config, error) {
	configPath := "./config.yaml"

	if envPath := os.Getenv("QUICKAPI_CONFIG_FILE_PATH"); envPath != "" {
		configPath = envPath
	}

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--config" {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("missing value after --config")
			}
			configPath = args[i+1]
			i++
			continue
		}
		if strings.HasPrefix(arg, "--config=") {
			val := strings.TrimPrefix(arg, "--config=")
			if val != "" {
				configPath = val
			}
			continue
		}
	}

	cfg := zviper.New()
	if err := cfg.LoadFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file %q: %w", configPath, err)
	}
	return cfg, nil
}

// initLogging 根据 "log" 配置段初始化全局日志；配置段缺失时保持默认。
func (a *Application) initLogging() error {
	if a.cfg == nil {
		return nil
	}

	var lc zlog.Config
	if err := a.cfg.UnmarshalKey("log", &lc); err != nil {
		return fmt.Errorf("parse log config: %w", err)
	}
	if lc == (zlog.Config{}) {
		return nil
	}

	if _, err := zlog.InitLogger(&lc); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return nil
}

// initTransport 根据 "transport" 配置段构造默认传输。
func (a *Application) initTransport() error {
	if a.cfg == nil {
		return nil
	}

	tc, err := transport.ConfigFromViper(a.cfg.Viper(), "transport")
	if err != nil {
		return fmt.Errorf("parse transport config: %w", err)
	}
	a.transport = transport.NewHTTPClientFromConfig(tc)
	return nil
}
