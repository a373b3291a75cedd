package script

import "strings"

// SplitLines はスクリプト本文を行に分割する
// 区切りは \r\n, \r, \n のいずれでもよく、空文字列の行は取り除く
func SplitLines(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
