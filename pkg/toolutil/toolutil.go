package toolutil

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// 读取文件并返回按行拆分的字符串列表，适用于所有操作系统
func ReadFileToLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法打开文件 %s: %w", filePath, err)
	}

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		// 自动处理不同操作系统的换行符
		lines = append(lines, scanner.Text())
	}

	readErr := scanner.Err()
	if readErr != nil {
		readErr = fmt.Errorf("读取文件 %s 出错: %w", filePath, readErr)
	}
	var closeErr error
	if cerr := file.Close(); cerr != nil {
		closeErr = fmt.Errorf("关闭文件 %s 失败: %w", filePath, cerr)
	}

	if readErr != nil || closeErr != nil {
		return lines, errors.Join(readErr, closeErr)
	}
	return lines, nil
}

// ParseIntList 解析逗号分隔的整数列表，忽略空白和空项
func ParseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("无法解析整数 %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}
