package errorutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	CodeSuccess = 0 // 成功执行

	// 60–69: 用户输入或调用错误
	CodeInvalidUsage = 64 // 命令行用法错误（参数不合法、越界等）
	CodeMissingInput = 65 // 缺失必须输入（如配置文件）
	CodeInvalidData  = 66 // 配置文件内容非法

	// 70–79: 程序自身错误
	CodeIOError     = 72 // 文件读写失败（日志、配置、输出）
	CodeInternalErr = 74 // 内部 bug、panic、未捕捉异常

	// 80–89: 运行环境相关
	CodeConfigError = 80 // 配置文件有误
	CodeTempFail    = 81 // 超出时间预算，换更小的规模可重试
)

// ErrInvalidArgument 是所有参数校验失败的根错误
// 各个包用 fmt.Errorf("%w: ...", ErrInvalidArgument) 包装后返回
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgf 构造一个包装了 ErrInvalidArgument 的错误
func InvalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// IsInvalidArgument 判断错误链中是否有参数错误
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// omitempty 的作用是空字段不出现
type ExitErrorWithCode struct {
	Code    int    `json:"code"`              // 框架/业务层级错误码
	Message string `json:"message,omitempty"` // 可读消息
	Err     error  `json:"-"`
}

func (e *ExitErrorWithCode) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("Exit with code: %d", e.Code)
}

func (e *ExitErrorWithCode) Unwrap() error {
	return e.Err
}

func NewExitError(code int, err error) error {
	return &ExitErrorWithCode{Code: code, Err: err}
}

// 带错误消息的错误
func NewExitErrorWithMessage(code int, message string, err error) error {
	return &ExitErrorWithCode{Code: code, Message: message, Err: err}
}

// os.Exit(errorutil.ExitCodeFromError(err))
// 显式带码的错误优先，其次按照错误链里的根错误分类
func ExitCodeFromError(err error) int {
	if err == nil {
		return CodeSuccess
	}
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidUsage
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTempFail
	}
	return CodeInternalErr
}

// msg := errorutil.UserMessage(err)
func UserMessage(err error) string {
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) && exitErr.Message != "" {
		return exitErr.Message
	}
	return ""
}

// 提取原始错误
func RootError(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

func (e *ExitErrorWithCode) JSON() string {
	type jsonErr struct {
		Code    int    `json:"code"`
		Message string `json:"message,omitempty"`
		Err     string `json:"error,omitempty"`
	}

	data := jsonErr{
		Code:    e.Code,
		Message: e.Message,
	}
	if e.Err != nil {
		data.Err = e.Err.Error()
	}
	jsonBytes, _ := json.Marshal(data)
	return string(jsonBytes)
}

// FormatErrorAndCode 把任意错误转换成 JSON 描述和进程退出码
func FormatErrorAndCode(err error) (string, int) {
	code := ExitCodeFromError(err)
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) {
		return exitErr.JSON(), code
	}
	// 构建一个临时 ExitErrorWithCode 对象，并直接调用其 JSON() 方法
	return (&ExitErrorWithCode{
		Code:    code,
		Message: UserMessage(err),
		Err:     err,
	}).JSON(), code
}
