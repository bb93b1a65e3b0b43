package initutil

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"percolation_tool/pkg/bench"
	"percolation_tool/pkg/errorutil"
	"percolation_tool/pkg/logutil"
	"percolation_tool/pkg/toolutil"
)

// Config 是一次运行的全局配置，命令行参数会覆盖这里的值
// 配置文件格式沿用 key=value; 每行一个，# 开头的行忽略：
//
//	trials=100;
//	limit=60;
//	sizes=10,20,50,100,150,200;
//	seed=0;
type Config struct {
	ConfigPath string
	LogFile    string
	LogLevel   logutil.Level
	// 每个规模的试验次数
	Trials int
	// 单次运行的时间预算
	Limit time.Duration
	// 对比表的网格规模
	Sizes []int
	// 0 表示每次运行随机播种
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		LogFile:  "percolate.log",
		LogLevel: logutil.WARN,
		Trials:   bench.DefaultTrials,
		Limit:    bench.DefaultLimit,
		Sizes:    append([]int(nil), bench.DefaultSizes...),
	}
}

var (
	globalConfig = DefaultConfig()
	once         sync.Once
)

// InitSystem 初始化日志并读取可选的配置文件，只执行一次
func InitSystem(logFileName string, logLevel logutil.Level, configPath string) error {
	var initErr error
	once.Do(func() {
		// 初始化日志
		if err := logutil.InitLogger(logFileName, logLevel); err != nil {
			initErr = errorutil.NewExitErrorWithMessage(errorutil.CodeIOError, "无法打开日志文件", err)
			return
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			initErr = err
			return
		}
		cfg.LogFile = logFileName
		cfg.LogLevel = logLevel
		globalConfig = cfg

		// 漂亮打印完整的结构体
		logutil.Info("globalConfig struct:\n%v", globalConfig)
	})
	return initErr
}

// LoadConfig 读取配置文件，路径为空时返回默认配置
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	cfg.ConfigPath = path
	if path == "" {
		return cfg, nil
	}

	lines, err := toolutil.ReadFileToLines(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, errorutil.NewExitErrorWithMessage(errorutil.CodeMissingInput, "配置文件不存在: "+path, err)
		}
		return cfg, errorutil.NewExitErrorWithMessage(errorutil.CodeIOError, "无法读取配置文件: "+path, err)
	}
	return parseConfig(cfg, strings.Join(lines, "\n"))
}

func parseConfig(cfg Config, conf string) (Config, error) {
	cfg.Trials = extractIntConfig(conf, "trials", cfg.Trials)
	cfg.Limit = time.Duration(extractIntConfig(conf, "limit", int(cfg.Limit/time.Second))) * time.Second
	if raw, ok := extractConfigValue(conf, "seed"); ok {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return cfg, errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidData, "seed 配置必须是非负整数: "+raw, err)
		}
		cfg.Seed = seed
	}

	if raw, ok := extractConfigValue(conf, "sizes"); ok {
		sizes, err := toolutil.ParseIntList(raw)
		if err != nil {
			return cfg, errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidData, "sizes 配置不合法", err)
		}
		cfg.Sizes = sizes
	}

	if cfg.Trials <= 0 || cfg.Limit <= 0 {
		return cfg, errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidData,
			fmt.Sprintf("trials=%d limit=%s 必须为正数", cfg.Trials, cfg.Limit),
			errorutil.InvalidArgf("配置值不合法"))
	}
	return cfg, nil
}

// extractConfigValue 提取 key=value; 中的 value，只认行首的 key，注释行不会匹配
func extractConfigValue(conf, key string) (string, bool) {
	re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(key) + `=([^;\r\n]+)`)
	m := re.FindStringSubmatch(conf)
	if len(m) < 2 {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// extractIntConfig 提取整数配置，缺失或者无法解析时使用默认值
func extractIntConfig(conf, key string, defaultVal int) int {
	raw, ok := extractConfigValue(conf, key)
	if !ok {
		return defaultVal
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logutil.Warn("配置 %s=%s 不是整数，使用默认值 %d", key, raw, defaultVal)
		return defaultVal
	}
	return v
}

// GetConfig 获取全局配置
func GetConfig() Config {
	return globalConfig
}
