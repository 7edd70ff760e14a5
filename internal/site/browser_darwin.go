//go:build darwin

package site

func browserCommand(url string) (string, []string) {
	return "open", []string{url}
}
