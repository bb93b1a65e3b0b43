package testutils

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

// 定义一次命令行调用
type Services struct {
	Name    string
	Command string
	Args    []string
}

// 命令行执行结果
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// BuildTool 把当前目录的 main 包编译到临时目录，返回可执行文件路径
func BuildTool(t *testing.T, name string) string {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("找不到 go 命令，跳过命令行测试")
	}
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	out := filepath.Join(t.TempDir(), name)
	build := exec.Command("go", "build", "-o", out, ".")
	if output, err := build.CombinedOutput(); err != nil {
		t.Fatalf("编译 %s 失败: %v, 输出: %s", name, err, output)
	}
	return out
}

// Run 执行命令，非 0 退出码不算错误，由调用方判断
func Run(t *testing.T, cmd Services) Result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	execCmd := exec.Command(cmd.Command, cmd.Args...)
	// 日志写到临时目录，不污染源码目录
	execCmd.Dir = t.TempDir()
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	res := Result{}
	err := execCmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		t.Fatalf("cmd: %s 无法执行: %v", cmd.Name, err)
	}
	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()
	return res
}

// 读取 JSON 的泛型函数
func readJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// 比较 JSON 数据的泛型函数
func compareJSON[T any](actual, expected *T) bool {
	return reflect.DeepEqual(actual, expected)
}

// RunCliTest 执行命令，把标准输出按 JSON 解析后交给 project 裁剪成要比较的部分，再和 expected 比较
// 随机结果(均值、耗时)由 project 去掉
func RunCliTest[T any](t *testing.T, cmd Services, expected *T, project func(*T)) {
	t.Run(cmd.Name, func(t *testing.T) {
		res := Run(t, cmd)
		if res.ExitCode != 0 {
			t.Fatalf("cmd: %s 退出码 %d, stderr: %s", cmd.Name, res.ExitCode, res.Stderr)
		}

		actual, err := readJSON[T](res.Stdout)
		if err != nil {
			t.Fatalf("解析输出失败: %v, 输出: %s", err, res.Stdout)
		}
		if project != nil {
			project(actual)
		}

		// 这个时候编译器已经知道了两个数据的类型，不需要显示指定了
		if !compareJSON(actual, expected) {
			t.Fatalf("JSON 数据不匹配\nactual:   %+v\nexpected: %+v", actual, expected)
		}
	})
}

// WriteFile 在临时目录写入文件，返回路径
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入 %s 失败: %v", path, err)
	}
	return path
}
