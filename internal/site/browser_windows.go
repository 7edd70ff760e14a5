//go:build windows

package site

func browserCommand(url string) (string, []string) {
	return "cmd", []string{"/c", "start", url}
}
