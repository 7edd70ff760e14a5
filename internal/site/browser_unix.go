//go:build !darwin && !windows

package site

func browserCommand(url string) (string, []string) {
	return "xdg-open", []string{url}
}
