package logutil

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"sync"
)

// 定义日志级别
const (
	DEBUG Level = iota // 0
	INFO               // 1
	WARN               // 2
	ERROR              // 3
)

// Level 既是日志级别，也可以直接作为 cobra 的 flag 值
type Level int

// 定义日志级别映射字符串
var LOG_LEVELS = map[string]Level{
	"DEBUG": DEBUG,
	"INFO":  INFO,
	"WARN":  WARN,
	"ERROR": ERROR,
}

var (
	logger       *log.Logger
	logFile      *os.File
	once         sync.Once
	mu           sync.Mutex
	currentLevel = INFO // 默认日志级别
)

// 为了让 VarP 接收自定义类型，实现 flag.Value 接口(String Set Type)即可
func (l *Level) String() string {
	for name, v := range LOG_LEVELS {
		if v == *l {
			return name
		}
	}
	return fmt.Sprintf("Level(%d)", int(*l))
}

func (l *Level) Set(val string) error {
	level, err := ParseLogLevel(val)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

func (l *Level) Type() string {
	return "loglevel"
}

// ParseLogLevel 解析日志级别字符串，大小写不敏感
func ParseLogLevel(s string) (Level, error) {
	if level, ok := LOG_LEVELS[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return level, nil
	}
	return INFO, fmt.Errorf("无效的日志级别: %q (可选 DEBUG/INFO/WARN/ERROR)", s)
}

// InitLogger 初始化日志，允许指定输出目标（stdout 或 文件）
// 打开文件失败时退回到标准错误输出，并返回错误
func InitLogger(output string, level Level) error {
	var initErr error
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		var w io.Writer = os.Stdout
		if output == "stdout" || output == "" {
			logFile = os.Stdout
		} else {
			// 以追加模式打开日志文件，不会覆盖已有内容
			f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				initErr = fmt.Errorf("无法创建日志文件 %s: %w", output, err)
				w = os.Stderr
			} else {
				logFile = f
				w = f
			}
		}
		logger = log.New(w, "", log.LstdFlags)
		currentLevel = level
	})
	return initErr
}

// SetOutput 把日志重定向到任意 writer，主要给测试用
func SetOutput(w io.Writer, level Level) {
	once.Do(func() {})
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", 0)
	currentLevel = level
}

// 设置日志级别
func SetLogLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
}

// Enabled 判断某个级别当前是否会输出，热路径上先判断可以省掉格式化开销
func Enabled(level Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return level >= currentLevel
}

// logMessage 记录日志，仅输出符合当前级别的日志
func logMessage(level Level, msg string, args ...any) {
	mu.Lock()
	ready := logger != nil
	mu.Unlock()
	if !ready {
		_ = InitLogger("stdout", INFO) // 默认输出到控制台
	}
	if !Enabled(level) {
		return
	}

	_, file, line, _ := runtime.Caller(2) // 获取真正调用的文件+行号
	file = filepath.Base(file)

	var formattedArgs []any
	for _, arg := range args {
		v := reflect.ValueOf(arg)
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}

		switch v.Kind() {
		case reflect.Struct:
			formattedArgs = append(formattedArgs, PrintStruct(arg, false))
		case reflect.Slice, reflect.Map:
			// 如果是集合类型，转换为 JSON
			jsonData, err := json.Marshal(arg)
			if err != nil {
				formattedArgs = append(formattedArgs, fmt.Sprintf("无法格式化: %v", err))
			} else {
				formattedArgs = append(formattedArgs, string(jsonData))
			}
		default:
			formattedArgs = append(formattedArgs, arg)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return
	}
	logger.Printf("[%s:%d] %s", file, line, fmt.Sprintf(msg, formattedArgs...))
}

// Info 记录 INFO 日志
func Info(msg string, args ...any) {
	logMessage(INFO, "[INFO] "+msg, args...)
}

// Warn 记录 WARN 日志
func Warn(msg string, args ...any) {
	logMessage(WARN, "[WARN] "+msg, args...)
}

// Error 记录 ERROR 日志
func Error(msg string, args ...any) {
	logMessage(ERROR, "[ERR] "+msg, args...)
}

// Debug 记录 DEBUG 日志
func Debug(msg string, args ...any) {
	logMessage(DEBUG, "[DBG] "+msg, args...)
}

// 关闭日志文件（如果有的话）
func CloseLogger() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil && logFile != os.Stdout {
		if err := logFile.Close(); err != nil {
			return err
		}
		logFile = nil
	}
	return nil
}

// 递归格式化结构体信息
func formatStruct(s any, indent string) string {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Sprintf("%s非结构体类型: %#v\n", indent, v.Kind())
	}
	t := v.Type()

	var builder strings.Builder
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)
		if !field.IsExported() {
			continue
		}

		if value.Kind() != reflect.Struct {
			builder.WriteString(fmt.Sprintf("%s%s: %v\n", indent, field.Name, value))
		} else {
			// 如果是嵌套结构体,先打印标头,再递归处理
			builder.WriteString(fmt.Sprintf("%s%s:\n", indent, field.Name))
			builder.WriteString(formatStruct(value.Interface(), indent+"    "))
		}
	}

	return builder.String()
}

// 打印结构体信息（支持控制是否输出到标准输出）
func PrintStruct(s any, printToStdout bool) string {
	result := formatStruct(s, "")
	if printToStdout {
		fmt.Print(result)
	}
	return result
}
